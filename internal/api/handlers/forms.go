package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"integration-hub/internal/models"
	"integration-hub/internal/services"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6,max=128"`
}

type RegisterForm struct {
	FullName string `form:"full_name" binding:"required,min=2,max=120"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8,max=128"`
}

type IntegrationForm struct {
	Name              string `form:"name" binding:"required,max=120"`
	SystemName        string `form:"system_name" binding:"required,max=120"`
	BaseURL           string `form:"base_url" binding:"required,url,max=255"`
	EndpointPath      string `form:"endpoint_path" binding:"required,max=255"`
	HTTPMethod        string `form:"http_method" binding:"required,oneof=GET POST PUT DELETE PATCH"`
	Status            string `form:"status" binding:"omitempty,oneof=enabled disabled error"`
	AuthType          string `form:"auth_type" binding:"required,oneof=none api_key basic"`
	APIKey            string `form:"api_key" binding:"max=255"`
	Notes             string `form:"notes"`
	DocusaurusDocPath string `form:"docusaurus_doc_path" binding:"max=255"`
}

type SettingForm struct {
	Key   string `form:"key" binding:"required,max=120"`
	Value string `form:"value" binding:"required"`
}

var (
	HTTPMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}
	AuthTypes   = []string{models.AuthNone, models.AuthAPIKey, models.AuthBasic}
)

func (f *IntegrationForm) data() *services.IntegrationData {
	return &services.IntegrationData{
		Name:              f.Name,
		SystemName:        f.SystemName,
		BaseURL:           f.BaseURL,
		EndpointPath:      f.EndpointPath,
		HTTPMethod:        f.HTTPMethod,
		Status:            f.Status,
		AuthType:          f.AuthType,
		APIKey:            f.APIKey,
		Notes:             f.Notes,
		DocusaurusDocPath: f.DocusaurusDocPath,
	}
}

func integrationFormFrom(i *models.ApiIntegration) IntegrationForm {
	return IntegrationForm{
		Name:              i.Name,
		SystemName:        i.SystemName,
		BaseURL:           i.BaseURL,
		EndpointPath:      i.EndpointPath,
		HTTPMethod:        i.HTTPMethod,
		Status:            i.Status,
		AuthType:          i.AuthType,
		APIKey:            i.APIKey,
		Notes:             i.Notes,
		DocusaurusDocPath: i.DocusaurusDocPath,
	}
}

var fieldNamesOnce sync.Once

// UseFormFieldNames makes validation errors report the form field name
// instead of the Go struct field.
func UseFormFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// fieldErrors turns a binding error into one message per form field. The
// second return is false when err is not a validation failure.
func fieldErrors(err error) (map[string]string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out, true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "oneof":
		return "Not a valid choice."
	default:
		return "Invalid value."
	}
}
