package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/pkg/email"
	"github.com/sefazor/eventsphere-backend/pkg/jwt"
	"github.com/sefazor/eventsphere-backend/pkg/password"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	roleRepo     *repository.Repository[models.Role]
	tokens       *jwt.Manager
	emailService *email.EmailService
	logger       *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, roleRepo *repository.Repository[models.Role], tokens *jwt.Manager, emailService *email.EmailService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		tokens:       tokens,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	// Email kontrolü
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already exists: %w", ErrConflict)
	}

	roleName := req.Role
	if roleName == "" {
		roleName = models.RoleAttendee
	}
	if roleName != models.RoleAttendee && roleName != models.RoleOrganizer {
		return nil, validationError("role %q cannot be self-assigned", roleName)
	}
	role, err := s.roleRepo.FirstWhere(ctx, repository.Where("role_name = ?", roleName))
	if err != nil {
		return nil, err
	}

	// Şifreyi hashle
	hash, salt, err := password.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        req.Name,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    hash,
		Salt:        salt,
		RoleID:      role.ID,
		RoleName:    role.RoleName,
		DateCreated: time.Now().UTC(),
	}
	if err := s.userRepo.Add(ctx, user); err != nil {
		return nil, err
	}

	// Hoş geldin emaili arka planda gönderilir
	go func(to, name string) {
		if err := s.emailService.SendWelcomeEmail(context.Background(), to, name); err != nil {
			s.logger.Warn("failed to send welcome email", zap.String("to", to), zap.Error(err))
		}
	}(user.Email, user.Name)

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.Password, user.Salt) {
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.RoleName)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}
