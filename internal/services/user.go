package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jjudge-oj/todoapi/internal/auth"
	"github.com/jjudge-oj/todoapi/internal/store"
	"github.com/jjudge-oj/todoapi/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates registration, credential checks and profile changes.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register stores a new active user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req types.CreateUserRequest) (types.User, error) {
	username := strings.TrimSpace(req.Username)
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return types.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, fmt.Errorf("check username: %w", err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, types.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         strings.TrimSpace(req.Role),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		IsActive:     true,
		PasswordHash: hashed,
	})
}

// Authenticate returns the user when username exists and password matches.
// Both failure modes collapse into ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword replaces the stored hash when current matches it. On a
// mismatch the stored hash is left untouched and ErrInvalidCredentials is
// returned.
func (s *UserService) ChangePassword(ctx context.Context, userID int, current, next string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, current) {
		return ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hashed
	_, err = s.repo.Update(ctx, user)
	return err
}

func (s *UserService) ChangePhoneNumber(ctx context.Context, userID int, phoneNumber string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.PhoneNumber = phoneNumber
	_, err = s.repo.Update(ctx, user)
	return err
}
