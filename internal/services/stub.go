package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"integration-hub/internal/models"

	"github.com/spf13/afero"
)

// StubGenerator writes a placeholder handler source file per integration.
// Files are never overwritten and never executed by the app.
type StubGenerator struct {
	fs  afero.Fs
	dir string
}

func NewStubGenerator(fs afero.Fs, dir string) *StubGenerator {
	return &StubGenerator{fs: fs, dir: dir}
}

var stubTemplate = template.Must(template.New("stub").Parse(`// Placeholder handler for integration {{.Name}} (ID: {{.ID}}).
// Generated by integration-hub. Review and adapt before exposing it to traffic;
// it is not registered with any router automatically.

package stubs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register{{.Ident}} mounts the stub handler on r.
func Register{{.Ident}}(r gin.IRoutes) {
	r.Handle({{printf "%q" .Method}}, {{printf "%q" .EndpointPath}}, handle{{.Ident}})
}

func handle{{.Ident}}(c *gin.Context) {
	var payload map[string]any
	_ = c.ShouldBindJSON(&payload)
	c.JSON(http.StatusOK, gin.H{
		"message": {{printf "%q" .Message}},
		"payload": payload,
	})
}
`))

type stubData struct {
	ID           uint
	Ident        string
	Name         string
	Method       string
	EndpointPath string
	Message      string
}

// Path returns the deterministic stub location for an integration id.
func (g *StubGenerator) Path(id uint) string {
	return filepath.Join(g.dir, fmt.Sprintf("integration_%d.go", id))
}

// Exists reports whether the stub for id is already on disk.
func (g *StubGenerator) Exists(id uint) bool {
	ok, err := afero.Exists(g.fs, g.Path(id))
	return err == nil && ok
}

// Generate writes the stub for integration unless it already exists.
// It returns the file path and whether a new file was written.
func (g *StubGenerator) Generate(integration *models.ApiIntegration) (string, bool, error) {
	if integration.ID == 0 {
		return "", false, errors.New("integration must be saved before generating a stub")
	}

	path := g.Path(integration.ID)
	if err := g.fs.MkdirAll(g.dir, 0755); err != nil {
		return "", false, fmt.Errorf("failed to create stub directory: %w", err)
	}

	content, err := renderStub(integration)
	if err != nil {
		return "", false, err
	}

	f, err := g.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("failed to create stub file: %w", err)
	}

	// A partial file would block every later attempt, so drop it on failure.
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = g.fs.Remove(path)
		return "", false, fmt.Errorf("failed to write stub file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = g.fs.Remove(path)
		return "", false, fmt.Errorf("failed to close stub file: %w", err)
	}

	return path, true, nil
}

func renderStub(integration *models.ApiIntegration) ([]byte, error) {
	name := oneLine(integration.Name)
	method := strings.ToUpper(integration.HTTPMethod)
	if method == "" {
		method = "GET"
	}
	endpoint := integration.EndpointPath
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	var buf bytes.Buffer
	err := stubTemplate.Execute(&buf, stubData{
		ID:           integration.ID,
		Ident:        fmt.Sprintf("Integration%d", integration.ID),
		Name:         name,
		Method:       method,
		EndpointPath: endpoint,
		Message:      "Stub handler for " + name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render stub: %w", err)
	}
	return buf.Bytes(), nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
