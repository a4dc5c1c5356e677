package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/pkg/password"
)

type UserService struct {
	userRepo *repository.UserRepository
	roleRepo *repository.Repository[models.Role]
}

func NewUserService(userRepo *repository.UserRepository, roleRepo *repository.Repository[models.Role]) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUsersByRole(ctx context.Context, roleName string) ([]models.User, error) {
	return s.userRepo.GetByRole(ctx, roleName)
}

func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

// UpdateUser updates the profile fields. A zero RoleID keeps the current role.
func (s *UserService) UpdateUser(ctx context.Context, id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}

	if req.Email != user.Email {
		exists, err := s.userRepo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("email already in use: %w", ErrConflict)
		}
	}

	if req.RoleID != 0 && req.RoleID != user.RoleID {
		role, err := s.roleRepo.GetByID(ctx, req.RoleID)
		if err != nil {
			return nil, notFound(err, "role", req.RoleID)
		}
		user.RoleID = role.ID
		user.RoleName = role.RoleName
	}

	user.Name = req.Name
	user.LastName = req.LastName
	user.Email = req.Email

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password and stores a new salt and hash.
func (s *UserService) UpdatePassword(ctx context.Context, id uint, req models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "user", id)
	}

	if !password.Verify(req.CurrentPassword, user.Password, user.Salt) {
		return fmt.Errorf("current password is incorrect: %w", ErrUnauthorized)
	}

	hash, salt, err := password.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	user.Salt = salt

	return s.userRepo.Update(ctx, user)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}
