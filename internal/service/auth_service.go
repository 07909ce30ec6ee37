package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/pkg/api"
	"github.com/sefazor/taskflow-client/pkg/utils"
)

type AuthBackend interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error)
}

type AuthService struct {
	backend   AuthBackend
	sessions  *SessionStore
	validator *utils.Validator
	logger    *zap.Logger
}

func NewAuthService(backend AuthBackend, sessions *SessionStore, validator *utils.Validator, logger *zap.Logger) *AuthService {
	return &AuthService{
		backend:   backend,
		sessions:  sessions,
		validator: validator,
		logger:    logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*api.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, &InputError{Message: s.validator.Message(err), Err: err}
	}

	resp, err := s.backend.Login(ctx, req.ToAPI())
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	if err := s.sessions.Set(resp.AccessToken, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*api.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, &InputError{Message: s.validator.Message(err), Err: err}
	}

	resp, err := s.backend.Register(ctx, req.ToAPI())
	if err != nil {
		s.logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	if err := s.sessions.Set(resp.AccessToken, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *AuthService) Logout() error {
	return s.sessions.Clear()
}
