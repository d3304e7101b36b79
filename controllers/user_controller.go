package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/models"
	"github.com/fusionorder/fusion-order-api/services"
)

// UpdateUserRequest represents the request body for an admin user update.
// Absent fields leave the stored values untouched.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Role     *string `json:"role" binding:"omitempty,oneof=USER ADMIN MANAGER"`
	Enabled  *bool   `json:"enabled"`
}

// ListUsers handles GET /api/admin/users
func ListUsers(c *gin.Context) {
	views, err := services.NewUserService(config.GetDB()).List()
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, views)
}

// GetUser handles GET /api/admin/users/:id
func GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := services.NewUserService(config.GetDB()).Get(id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, view)
}

// UpdateUser handles PUT /api/admin/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	patch := services.UserPatch{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
		Enabled:  req.Enabled,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		patch.Role = &role
	}

	view, err := services.NewUserService(config.GetDB()).Update(id, patch)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, view)
}

// DeleteUser handles DELETE /api/admin/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := services.NewUserService(config.GetDB()).Delete(id); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "user deleted", nil)
}
