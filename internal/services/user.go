package services

import (
	"errors"

	"integration-hub/internal/config"
	"integration-hub/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")
	ErrSelfDemotion     = errors.New("cannot remove your own admin role")
)

type UserService struct {
	authService *AuthService
}

func NewUserService(cfg *config.Config) *UserService {
	return &UserService{
		authService: NewAuthService(cfg),
	}
}

// GetUsers returns all users ordered by full name
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := models.DB.Preload("Role").Order("full_name").Find(&users).Error; err != nil {
		return nil, err
	}

	// Clear password hashes
	for i := range users {
		users[i].PasswordHash = ""
	}

	return users, nil
}

// GetUser returns a specific user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.Preload("Role").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}

// GetRoles returns the role table ordered by id
func (s *UserService) GetRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := models.DB.Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// SetRole assigns the named role to a user. An admin cannot drop their own
// admin role, so the site always keeps the admin doing the change.
func (s *UserService) SetRole(actorID, id uint, roleName string) (*models.User, error) {
	if actorID == id && roleName != models.RoleAdmin {
		return nil, ErrSelfDemotion
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	var role models.Role
	if err := models.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRole
		}
		return nil, err
	}

	if err := models.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("role_id", role.ID).Error; err != nil {
		return nil, err
	}

	user.RoleID = &role.ID
	user.Role = &role
	return user, nil
}

// SetActive flips the login gate of a user. Deactivation also ends the
// user's sessions.
func (s *UserService) SetActive(actorID, id uint, active bool) (*models.User, error) {
	if actorID == id && !active {
		return nil, ErrSelfDeactivation
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("active", active).Error; err != nil {
			return err
		}
		if !active {
			return tx.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Active = active
	return user, nil
}
