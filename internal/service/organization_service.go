package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/pkg/api"
	"github.com/sefazor/taskflow-client/pkg/utils"
)

type OrganizationBackend interface {
	ListOrganizations(ctx context.Context) ([]api.Organization, error)
	GetOrganization(ctx context.Context, orgID string) (*api.Organization, error)
	CreateOrganization(ctx context.Context, req api.CreateOrganizationRequest) (*api.Organization, error)
}

type OrganizationService struct {
	backend   OrganizationBackend
	validator *utils.Validator
	logger    *zap.Logger
}

func NewOrganizationService(backend OrganizationBackend, validator *utils.Validator, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{
		backend:   backend,
		validator: validator,
		logger:    logger,
	}
}

func (s *OrganizationService) GetAllOrganizations(ctx context.Context) ([]api.Organization, error) {
	return s.backend.ListOrganizations(ctx)
}

func (s *OrganizationService) GetOrganizationByID(ctx context.Context, orgID string) (*api.Organization, error) {
	return s.backend.GetOrganization(ctx, orgID)
}

// CreateOrganization creates an organization owned by the logged-in user.
func (s *OrganizationService) CreateOrganization(ctx context.Context, req models.CreateOrganizationRequest) (*api.Organization, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, &InputError{Message: s.validator.Message(err), Err: err}
	}

	org, err := s.backend.CreateOrganization(ctx, req.ToAPI())
	if err != nil {
		s.logger.Warn("create organization failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("organization created", zap.String("org_id", org.ID))
	return org, nil
}

func (s *OrganizationService) GetPlans() []models.Plan {
	return models.AvailablePlans()
}
