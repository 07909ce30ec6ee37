package models

import (
	"github.com/sefazor/taskflow-client/pkg/api"
)

type CreateOrganizationRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=100"`
}

func (r CreateOrganizationRequest) ToAPI() api.CreateOrganizationRequest {
	return api.CreateOrganizationRequest{
		Name: r.Name,
	}
}
