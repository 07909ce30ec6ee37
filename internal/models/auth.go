package models

import (
	"github.com/sefazor/taskflow-client/pkg/api"
)

type RegisterRequest struct {
	FullName string `json:"full_name" form:"full_name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

func (r RegisterRequest) ToAPI() api.RegisterRequest {
	return api.RegisterRequest{
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
	}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r LoginRequest) ToAPI() api.LoginRequest {
	return api.LoginRequest{
		Email:    r.Email,
		Password: r.Password,
	}
}
