package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/apperror"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, userID int64) (*response.UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Please provide all required fields.")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Cek username sudah dipakai
	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Internal("check username", err)
	}
	if existing != nil {
		return nil, apperror.Validation("Username already exists.")
	}

	// 3. Cek email sudah terdaftar
	existing, err = s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("check email", err)
	}
	if existing != nil {
		return nil, apperror.Validation("Email already exists.")
	}

	hashedPassword, err := utils.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}

	// Two concurrent registrations can both pass the checks above; the
	// unique constraint decides.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Validation("Username or email already exists.")
		}
		return nil, apperror.Internal("create user", err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Please provide username and password.")
	}

	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, apperror.Internal("find user", err)
	}

	// Same message for unknown user and wrong password.
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("username", req.Username))
		return nil, apperror.Unauthorized("Invalid credentials.")
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))
	return s.issueToken(user)
}

func (s *authService) Me(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("find user", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("Not authorized.")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) issueToken(user *entity.User) (*response.AuthResponse, error) {
	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, err := utils.NewAccessToken(s.config.JWT.Secret, user.ID, ttl)
	if err != nil {
		return nil, apperror.Internal("sign token", err)
	}

	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
		User:      response.UserToResponse(user),
	}, nil
}
