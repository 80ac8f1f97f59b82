// Package controllers maps HTTP requests onto the services.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/dressshop/app/services"
	"github.com/shashiranjanraj/dressshop/config"
	"github.com/shashiranjanraj/dressshop/pkg/bind"
	"github.com/shashiranjanraj/dressshop/pkg/principal"
	"github.com/shashiranjanraj/dressshop/pkg/response"
)

// AuthController handles registration and login for users and admins.
type AuthController struct {
	svc *services.AuthService
}

// NewAuthController wires the controller.
func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a shopper account. POST /api/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.svc.RegisterUser(r, in)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}

	response.Created(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login authenticates a shopper. POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.svc.LoginUser(r, in.Email, in.Password)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated principal. GET /api/auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := principal.FromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	response.Success(w, p)
}

// AdminLogin authenticates a back-office account. POST /api/admin/login
func (c *AuthController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	admin, token, err := c.svc.LoginAdmin(r, in.Email, in.Password)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"admin": admin,
	})
}

// CreateDefaultAdmin bootstraps the default admin account.
// POST /api/admin/create-default — disabled in production.
func (c *AuthController) CreateDefaultAdmin(w http.ResponseWriter, r *http.Request) {
	if config.IsProduction() {
		response.Forbidden(w, "This endpoint is disabled in production")
		return
	}

	admin, created, err := c.svc.EnsureDefaultAdmin(r)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}

	if !created {
		response.Success(w, map[string]interface{}{
			"message": "Admin already exists",
			"email":   admin.Email,
		})
		return
	}

	response.Created(w, map[string]interface{}{
		"message": "Admin created successfully",
		"email":   admin.Email,
	})
}
