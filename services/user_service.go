// File: /services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"
	"fleetexpense-api/utils"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Authenticate for any bad email or
// password combination.
var ErrInvalidCredentials = errors.New("invalid credentials")

// WelcomeMailer sends the welcome email for a new account.
type WelcomeMailer interface {
	SendWelcomeEmail(email, name string) error
}

type UserService struct {
	users  *repositories.UserRepository
	mailer WelcomeMailer
}

func NewUserService(users *repositories.UserRepository, mailer WelcomeMailer) *UserService {
	return &UserService{users: users, mailer: mailer}
}

type NewUser struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// Create validates and stores a new account and sends its welcome email.
// A failed email is logged and does not undo the account.
func (s *UserService) Create(ctx context.Context, in NewUser) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = models.RoleUser
	}

	if in.Name == "" {
		return nil, NewValidationError("name is required")
	}
	if err := checkmail.ValidateFormat(in.Email); err != nil {
		return nil, NewValidationError("invalid email address")
	}
	if !utils.IsValidPassword(in.Password) {
		return nil, NewValidationError("password must be at least 6 characters and mix upper case, lower case, digits or symbols")
	}
	if !in.Role.Valid() {
		return nil, NewValidationError("role must be admin or user")
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email %s", ErrConflict, in.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashedPassword),
		Role:     in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
			slog.WarnContext(ctx, "Failed to send welcome email", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Get returns the user. Plain users may only read themselves.
func (s *UserService) Get(ctx context.Context, caller Caller, id string) (*models.User, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return nil, ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	return user, nil
}

// Delete removes the user with their groups and expenses. Admins cannot
// delete their own account.
func (s *UserService) Delete(ctx context.Context, caller Caller, id string) error {
	if caller.ID == id {
		return NewValidationError("you cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
