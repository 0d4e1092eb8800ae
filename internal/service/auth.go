package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/wishlist-santa/backend/internal/apperr"
	"github.com/wishlist-santa/backend/internal/models"
	"github.com/wishlist-santa/backend/internal/repository"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Age      *int
	About    *string
}

// Register creates a new account. Username uniqueness is enforced by the
// storage constraint, not the lookup that produces the friendly message.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)

	switch {
	case in.Username == "":
		return nil, apperr.New(apperr.Validation, "username is required")
	case in.Password == "":
		return nil, apperr.New(apperr.Validation, "password is required")
	case in.Name == "":
		return nil, apperr.New(apperr.Validation, "name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Age:          in.Age,
		About:        in.About,
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Username already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infof("Registered new user %q (id=%d)", user.Username, user.ID)
	return user, nil
}

// Login verifies credentials and returns the matching user. Unknown username
// and wrong password are deliberately indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "Username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup user %q: %w", username, err)
	}
	if user == nil {
		return nil, apperr.New(apperr.Auth, "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Auth, "Invalid username or password")
	}

	return user, nil
}

// GetUser loads a user by id.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	return user, nil
}
