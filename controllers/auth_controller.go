package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/models"
	"github.com/fusionorder/fusion-order-api/services"
)

var tokenService *services.TokenService

// SetTokenService wires the token service used by login.
func SetTokenService(tokens *services.TokenService) {
	tokenService = tokens
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Role     string  `json:"role" binding:"omitempty,oneof=USER ADMIN MANAGER"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.Role(req.Role),
		Enabled:  true,
	}

	view, err := services.NewUserService(config.GetDB()).Register(&user)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "registration successful", view)
}

// Login handles POST /api/auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	log.Printf("Login attempt, username: %s", req.Username)
	result, err := services.NewAuthService(config.GetDB(), tokenService).Login(req.Username, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "login successful", result)
}
