package controller

import (
	"context"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/service"
	"github.com/sefazor/taskflow-client/pkg/api"
)

type OrganizationController struct {
	organizationService *service.OrganizationService
}

func NewOrganizationController(organizationService *service.OrganizationService) *OrganizationController {
	return &OrganizationController{
		organizationService: organizationService,
	}
}

func (c *OrganizationController) GetAllOrganizations(ctx context.Context) ([]api.Organization, error) {
	return c.organizationService.GetAllOrganizations(ctx)
}

func (c *OrganizationController) GetOrganizationByID(ctx context.Context, orgID string) (*api.Organization, error) {
	return c.organizationService.GetOrganizationByID(ctx, orgID)
}

func (c *OrganizationController) CreateOrganization(ctx context.Context, req models.CreateOrganizationRequest) (*api.Organization, error) {
	return c.organizationService.CreateOrganization(ctx, req)
}

func (c *OrganizationController) GetPlans() []models.Plan {
	return c.organizationService.GetPlans()
}
