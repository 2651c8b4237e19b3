package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"integration-hub/internal/config"
	"integration-hub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrSessionNotFound    = errors.New("session not found")
)

type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// CreateUser creates a new user with the named role
func (s *AuthService) CreateUser(email, fullName, password, roleName string) (*models.User, error) {
	email = NormalizeEmail(email)

	var existingUser models.User
	err := models.DB.Where("email = ?", email).First(&existingUser).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var role models.Role
	if err := models.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, roleName)
		}
		return nil, err
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hashedPassword,
		Active:       true,
		RoleID:       &role.ID,
		Role:         &role,
	}

	if err := insertUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// insertUser stores user. A concurrent insert of the same email loses on
// the unique index and reports ErrUserExists.
func insertUser(user *models.User) error {
	if err := models.DB.Omit(clause.Associations).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// Register creates a self-service account. The role is always developer.
func (s *AuthService) Register(email, fullName, password string) (*models.User, error) {
	return s.CreateUser(email, fullName, password, models.RoleDeveloper)
}

// Authenticate verifies credentials and returns the user. Unknown email,
// wrong password and inactive account all yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := models.DB.Preload("Role").Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) || !user.Active {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// CreateDefaultUser creates the default admin user if the database has no users
func (s *AuthService) CreateDefaultUser() error {
	var count int64
	if err := models.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		_, err := s.CreateUser(
			s.cfg.DefaultUser.Email,
			s.cfg.DefaultUser.FullName,
			s.cfg.DefaultUser.Password,
			models.RoleAdmin,
		)
		return err
	}

	return nil
}

// ResetPassword sets a new password for the user with the given email.
func (s *AuthService) ResetPassword(email, password string) error {
	var user models.User
	if err := models.DB.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	return models.DB.Model(&user).Update("password_hash", hashedPassword).Error
}

// StartSession issues a signed token for user and records the session.
func (s *AuthService) StartSession(user *models.User) (string, time.Time, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.CreateSession(user.ID, token, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create session: %w", err)
	}
	return token, expiresAt, nil
}

// CreateSession creates a new session record
func (s *AuthService) CreateSession(userID uint, token string, expiresAt time.Time) error {
	session := &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return models.DB.Create(session).Error
}

// GetSession retrieves an unexpired session for an active user by token.
// The token signature is checked before the database is consulted.
func (s *AuthService) GetSession(token string) (*models.Session, error) {
	if _, err := s.parseToken(token); err != nil {
		return nil, ErrSessionNotFound
	}

	var session models.Session
	if err := models.DB.Where("token = ? AND expires_at > ?", token, time.Now()).Preload("User.Role").First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !session.User.Active {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// DeleteSession deletes a session
func (s *AuthService) DeleteSession(token string) error {
	return models.DB.Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteUserSessions drops every session of a user.
func (s *AuthService) DeleteUserSessions(userID uint) error {
	return models.DB.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// DeleteExpiredSessions removes expired sessions
func (s *AuthService) DeleteExpiredSessions() (int64, error) {
	res := models.DB.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

func (s *AuthService) generateToken(user *models.User) (string, time.Time, error) {
	expiresIn, err := time.ParseDuration(s.cfg.Session.ExpiresIn)
	if err != nil || expiresIn <= 0 {
		expiresIn = 12 * time.Hour
	}

	now := time.Now()
	expiresAt := now.Add(expiresIn)

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.RoleName(),
		"jti":     uuid.NewString(),
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
		"iss":     s.cfg.Session.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.Session.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Session.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.cfg.Session.Issuer))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
