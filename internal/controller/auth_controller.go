package controller

import (
	"context"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/service"
	"github.com/sefazor/taskflow-client/pkg/api"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

func (c *AuthController) Register(ctx context.Context, req models.RegisterRequest) (*api.User, error) {
	return c.authService.Register(ctx, req)
}

func (c *AuthController) Login(ctx context.Context, req models.LoginRequest) (*api.User, error) {
	return c.authService.Login(ctx, req)
}

func (c *AuthController) Logout() error {
	return c.authService.Logout()
}
