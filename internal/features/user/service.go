package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go-fleet/pkg/utils"
)

type UserService interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context, organizationID, workplace string) ([]User, error)
	UpdateUser(ctx context.Context, id string, user *User) error
	DeleteUser(ctx context.Context, id string) error
}

type UserServiceImpl struct {
	UserRepo UserRepository
}

func NewUserService(userRepo UserRepository) UserService {
	return &UserServiceImpl{UserRepo: userRepo}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, user *User) error {
	if user.Email == "" {
		return fmt.Errorf("email is required")
	}
	if user.Role == "" {
		user.Role = utils.RoleUser
	}
	if user.Status == "" {
		user.Status = "active"
	}
	user.Password = HashPassword(user.Password)
	return s.UserRepo.Create(ctx, user)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*User, error) {
	return s.UserRepo.FindByID(ctx, id)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, organizationID, workplace string) ([]User, error) {
	return s.UserRepo.FindMembers(ctx, organizationID, workplace)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, user *User) error {
	return s.UserRepo.Update(ctx, id, user)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	return s.UserRepo.Delete(ctx, id)
}

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
