package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/taskflow-client/internal/controller"
	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
)

type AuthHandler struct {
	authController *controller.AuthController
	pages          *Pages
}

func NewAuthHandler(authController *controller.AuthController, pages *Pages) *AuthHandler {
	return &AuthHandler{
		authController: authController,
		pages:          pages,
	}
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.pages.Render(c, "login", nil)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		h.pages.Notify(notify.LevelError, "Invalid request body")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	user, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return h.pages.RedirectWithError(c, "/login", err)
	}

	h.pages.Notify(notify.LevelSuccess, "Welcome back, "+user.FullName+"!")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return h.pages.Render(c, "register", nil)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		h.pages.Notify(notify.LevelError, "Invalid request body")
		return c.Redirect("/register", fiber.StatusSeeOther)
	}

	user, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		return h.pages.RedirectWithError(c, "/register", err)
	}

	h.pages.Notify(notify.LevelSuccess, "Account created. Welcome, "+user.FullName+"!")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authController.Logout(); err != nil {
		return h.pages.RedirectWithError(c, "/login", err)
	}
	h.pages.Notify(notify.LevelInfo, "You have been logged out")
	return c.Redirect("/login", fiber.StatusSeeOther)
}
