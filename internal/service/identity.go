package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"stafftrack/internal/model"
	"stafftrack/internal/password"
	"stafftrack/internal/token"
)

// Identity manages employee and admin accounts: login, registration,
// profile updates and soft deactivation. Accounts are never hard
// deleted so attendance history stays intact.
type Identity struct {
	logger *slog.Logger
	users  UserRepository
	tokens *token.Issuer
	now    Clock
}

func NewIdentity(logger *slog.Logger, users UserRepository, tokens *token.Issuer) *Identity {
	return &Identity{
		logger: logger.With("service", "identity"),
		users:  users,
		tokens: tokens,
		now:    time.Now,
	}
}

// Login resolves the identifier as a userId first, then as an email,
// verifies the password hash and issues a bearer token. Deactivated
// accounts are rejected even with valid credentials.
func (s *Identity) Login(ctx context.Context, identifier, plaintext string) (model.User, string, error) {
	user, err := s.users.GetByUserID(ctx, identifier)
	if errors.Is(err, model.ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, "", ErrInvalidCredentials
		}
		return model.User{}, "", err
	}

	if !password.Matches(plaintext, user.PasswordHash) {
		return model.User{}, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return model.User{}, "", ErrAccountDeactivated
	}

	bearer, err := s.tokens.Issue(user.ID, s.now())
	if err != nil {
		return model.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("login", "user", user.ID)

	return user, bearer, nil
}

// Authenticate resolves a verified token subject to a live account,
// used by the auth middleware on every request.
func (s *Identity) Authenticate(ctx context.Context, id model.ID) (model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}

	if !user.IsActive {
		return model.User{}, ErrAccountDeactivated
	}

	return user, nil
}

type RegisterEmployeeParams struct {
	Name     string
	Password string
	Phone    *string
	Email    *string
	UserID   *string
}

func (s *Identity) RegisterEmployee(ctx context.Context, params RegisterEmployeeParams) (model.User, error) {
	if params.Phone != nil {
		if _, err := s.users.GetByPhone(ctx, *params.Phone); err == nil {
			return model.User{}, ErrPhoneTaken
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
	}

	if params.UserID != nil {
		if _, err := s.users.GetByUserID(ctx, *params.UserID); err == nil {
			return model.User{}, ErrUserIDTaken
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
	}

	hash, err := password.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	userID := params.UserID
	if userID == nil {
		code := s.generateEmployeeCode()
		userID = &code
	}

	now := s.now()
	user := model.User{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         params.Name,
		UserID:       userID,
		Email:        params.Email,
		Phone:        params.Phone,
		PasswordHash: hash,
		Role:         model.RoleEmployee,
		IsActive:     true,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, model.ErrExists) {
			return model.User{}, ErrUserIDTaken
		}
		return model.User{}, err
	}

	s.logger.Info("employee registered", "user", user.ID, "userId", *user.UserID)

	return user, nil
}

// ListEmployees returns every employee account, newest first,
// including deactivated ones.
func (s *Identity) ListEmployees(ctx context.Context) ([]model.User, error) {
	return s.users.FindEmployees(ctx)
}

type UpdateEmployeeParams struct {
	Name     *string
	Phone    *string
	Email    *string
	IsActive *bool
}

func (s *Identity) UpdateEmployee(ctx context.Context, id model.ID, params UpdateEmployeeParams) (model.User, error) {
	user, err := s.employee(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if params.Phone != nil && (user.Phone == nil || *user.Phone != *params.Phone) {
		other, err := s.users.GetByPhone(ctx, *params.Phone)
		if err == nil && other.ID != id {
			return model.User{}, ErrPhoneTaken
		}
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Phone != nil {
		user.Phone = params.Phone
	}
	if params.Email != nil {
		user.Email = params.Email
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, model.ErrExists) {
			return model.User{}, ErrPhoneTaken
		}
		return model.User{}, err
	}

	return user, nil
}

// DeactivateEmployee flips the active flag instead of deleting the
// account; further logins are rejected, attendance history remains.
func (s *Identity) DeactivateEmployee(ctx context.Context, id model.ID) error {
	user, err := s.employee(ctx, id)
	if err != nil {
		return err
	}

	user.IsActive = false
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("employee deactivated", "user", id)

	return nil
}

func (s *Identity) employee(ctx context.Context, id model.ID) (model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, ErrEmployeeNotFound
		}
		return model.User{}, err
	}

	if user.Role != model.RoleEmployee {
		return model.User{}, ErrEmployeeNotFound
	}

	return user, nil
}

// EnsureAdmin creates the bootstrap admin account on first start.
// Idempotent: an existing account with the email wins.
func (s *Identity) EnsureAdmin(ctx context.Context, name, email, plaintext string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	admin := model.User{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         name,
		Email:        &email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}

	if err := s.users.Insert(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("admin bootstrapped", "user", admin.ID)

	return nil
}

// generateEmployeeCode builds a login code for employees registered
// without one: "EMP" + trailing digits of the current unix millis +
// three random digits.
func (s *Identity) generateEmployeeCode() string {
	millis := fmt.Sprintf("%d", s.now().UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	return fmt.Sprintf("EMP%s%03d", millis, rand.Intn(1000))
}
