package service

import (
	"context"
	"fmt"
	"time"

	"nexify_backend/internal/model"
	"nexify_backend/internal/repository"
	"nexify_backend/internal/utils"

	"github.com/google/uuid"
)

// UserService provides identity, directory and role-resolution services
type UserService interface {
	// IssueToken signs a session token for a verified identity claim
	IssueToken(email, name string) (string, error)
	// CreateUser inserts a user on first sign-in. The insert is idempotent on
	// email: an existing record leaves the store untouched and returns ("", false).
	CreateUser(ctx context.Context, req model.CreateUserRequest) (string, bool, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	// RoleStatus reports the capability flags for an identity. A missing user
	// record resolves to all-false, never an error.
	RoleStatus(ctx context.Context, email string) (model.RoleStatus, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsModerator(ctx context.Context, email string) (bool, error)
	// UpdateRole escalates a user to admin or moderator. Any other role value
	// is a no-op. Returns the number of records changed.
	UpdateRole(ctx context.Context, id, role string) (int64, error)
}

type userService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) UserService {
	return &userService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

func (s *userService) IssueToken(email, name string) (string, error) {
	token, err := s.jwtUtil.GenerateToken(email, name)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (string, bool, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", false, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return "", false, nil // already registered, null-insert marker
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Image:     req.Image,
		Role:      model.RoleUser,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", false, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user.ID, true, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users from repo: %w", err)
	}
	return users, nil
}

func (s *userService) RoleStatus(ctx context.Context, email string) (model.RoleStatus, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return model.RoleStatus{}, fmt.Errorf("failed to resolve role: %w", err)
	}
	if user == nil {
		// a verified session without a user record holds no capabilities
		return model.RoleStatus{}, nil
	}
	return model.RoleStatus{
		Admin:     user.Role == model.RoleAdmin,
		Moderator: user.Role == model.RoleModerator,
	}, nil
}

func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	status, err := s.RoleStatus(ctx, email)
	return status.Admin, err
}

func (s *userService) IsModerator(ctx context.Context, email string) (bool, error) {
	status, err := s.RoleStatus(ctx, email)
	return status.Moderator, err
}

func (s *userService) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	if role != model.RoleAdmin && role != model.RoleModerator {
		return 0, nil // unrecognized role values are ignored
	}
	modified, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return 0, fmt.Errorf("failed to update role in repo: %w", err)
	}
	return modified, nil
}
