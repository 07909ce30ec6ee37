package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/taskflow-client/internal/controller"
	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/internal/service"
)

type OrganizationHandler struct {
	organizationController *controller.OrganizationController
	pages                  *Pages
}

func NewOrganizationHandler(organizationController *controller.OrganizationController, pages *Pages) *OrganizationHandler {
	return &OrganizationHandler{
		organizationController: organizationController,
		pages:                  pages,
	}
}

func (h *OrganizationHandler) Dashboard(c *fiber.Ctx) error {
	orgs, err := h.organizationController.GetAllOrganizations(c.UserContext())
	if err != nil {
		return h.pages.Render(c.Status(fiber.StatusBadGateway), "error", fiber.Map{
			"Status":  fiber.StatusBadGateway,
			"Message": service.UserMessage(err),
		})
	}

	return h.pages.Render(c, "dashboard", fiber.Map{
		"Organizations": orgs,
	})
}

func (h *OrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	org, err := h.organizationController.GetOrganizationByID(c.UserContext(), c.Params("orgId"))
	if err != nil {
		return h.pages.RedirectWithError(c, "/dashboard", err)
	}

	return h.pages.Render(c, "organization", fiber.Map{
		"Organization": org,
		"Plans":        h.organizationController.GetPlans(),
	})
}

func (h *OrganizationHandler) CreateOrganization(c *fiber.Ctx) error {
	var req models.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		h.pages.Notify(notify.LevelError, "Invalid request body")
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	org, err := h.organizationController.CreateOrganization(c.UserContext(), req)
	if err != nil {
		return h.pages.RedirectWithError(c, "/dashboard", err)
	}

	h.pages.Notify(notify.LevelSuccess, "Organization "+org.Name+" created")
	return c.Redirect("/organizations/"+url.PathEscape(org.ID), fiber.StatusSeeOther)
}
