package controllers

import (
	"net/http"

	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/ctx"
	"github.com/ordena/ordena/pkg/middleware"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthController struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthController() *AuthController {
	return &AuthController{
		auth:  services.NewAuthService(),
		users: services.NewUserService(),
	}
}

// Login exchanges email + password for a JWT pair.
func (ac *AuthController) Login(c *ctx.Context) {
	var in LoginInput
	if !c.BindJSON(&in) {
		return
	}

	tokens, err := ac.auth.Login(in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(tokens)
}

// Refresh exchanges a refresh token for a new JWT pair.
func (ac *AuthController) Refresh(c *ctx.Context) {
	var in RefreshInput
	if !c.BindJSON(&in) {
		return
	}

	tokens, err := ac.auth.Refresh(in.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(tokens)
}

// Profile returns the authenticated user.
func (ac *AuthController) Profile(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Error(http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := ac.users.Find(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}
