package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/krushnapatil2025/Task-Manager/models"
)

type AuthService struct {
	users            UserStore
	adminInviteToken string
}

// NewAuthService wires the auth flows to the user store. adminInviteToken is
// the shared secret that promotes a registration to the admin role.
func NewAuthService(users UserStore, adminInviteToken string) *AuthService {
	return &AuthService{users: users, adminInviteToken: adminInviteToken}
}

type RegisterInput struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ProfileImageURL  string `json:"profileImageUrl"`
	AdminInviteToken string `json:"adminInviteToken"`
}

type UpdateProfileInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// Register creates a new account. The role is member unless the submitted
// invite token matches the configured admin invite token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, newValidationError("email", "email and password are required")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, newValidationError("email", "user with this email already exists")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleMember
	if s.adminInviteToken != "" && in.AdminInviteToken == s.adminInviteToken {
		role = models.RoleAdmin
	}

	now := time.Now()
	user := &models.User{
		Name:            in.Name,
		Email:           in.Email,
		Password:        string(hashed),
		ProfileImageURL: in.ProfileImageURL,
		Role:            role,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns the matching user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetProfile returns the principal's own user record.
func (s *AuthService) GetProfile(ctx context.Context, p models.Principal) (*models.User, error) {
	return s.users.FindByID(ctx, p.ID)
}

// UpdateProfile applies a partial update to the principal's own record,
// following the same non-zero-only overwrite rule as task updates. A supplied
// password is re-hashed before storage.
func (s *AuthService) UpdateProfile(ctx context.Context, p models.Principal, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.ProfileImageURL != "" {
		user.ProfileImageURL = in.ProfileImageURL
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
