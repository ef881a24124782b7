package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	"github.com/cinetrack/cinetrack/pkg/crypto"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/metrics"
)

// UserService manages accounts and credential checks.
type UserService struct {
	db *gorm.DB
}

// NewUserService wires a user service.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &UserService{db: db}, nil
}

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Register creates a new account. Email and username collisions are
// reported as bad requests, matching what the login flow reveals anyway.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", input.Email).Count(&existing).Error; err != nil {
		return nil, apperrors.Wrap(err, "check existing email")
	}
	if existing > 0 {
		return nil, apperrors.NewBadRequest("Email already registered")
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", input.Username).Count(&existing).Error; err != nil {
		return nil, apperrors.Wrap(err, "check existing username")
	}
	if existing > 0 {
		return nil, apperrors.NewBadRequest("Username already taken")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "hash password")
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hash,
		FullName: input.FullName,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperrors.Wrap(err, "create user")
	}

	return &user, nil
}

// Authenticate verifies an email/password pair. All failure modes
// collapse into the same invalid-credentials error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load user")
	}

	if !user.IsActive || !crypto.VerifyPassword(user.Password, password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	return &user, nil
}

// GetByEmail loads an account by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load user")
	}
	return &user, nil
}
