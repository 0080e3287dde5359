package auth

import (
	"context"
	"fmt"

	"go-fleet/internal/features/user"
	"go-fleet/pkg/utils"
)

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
}

type AuthServiceImpl struct {
	UserRepo user.UserRepository
}

func NewAuthService(userRepo user.UserRepository) AuthService {
	return &AuthServiceImpl{UserRepo: userRepo}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if u == nil || u.Password != user.HashPassword(req.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(u.ID, u.Role, u.OrganizationID, u.CredentialID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	existing, err := s.UserRepo.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	u := &user.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       user.HashPassword(req.Password),
		Role:           utils.RoleUser,
		OrganizationID: req.OrganizationID,
		WorkplaceName:  req.WorkplaceName,
		CredentialID:   req.CredentialID,
		Status:         "active",
	}
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(u.ID, u.Role, u.OrganizationID, u.CredentialID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}
