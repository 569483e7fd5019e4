package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"roomrental/users-api/domain"
	"roomrental/users-api/dto"
	"roomrental/users-api/repositories"
	"roomrental/users-api/services"

	"github.com/gin-gonic/gin"
)

// AdminController handles the admin-only user management endpoints.
type AdminController struct {
	service services.UserService
}

// NewAdminController builds the controller.
func NewAdminController(service services.UserService) *AdminController {
	return &AdminController{service: service}
}

// GetAllUsers handles GET /api/users.
func (ctrl *AdminController) GetAllUsers(c *gin.Context) {
	users, err := ctrl.service.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "get_users_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUserByID handles GET /api/users/:id.
func (ctrl *AdminController) GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := ctrl.service.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "user_not_found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUserRole handles PUT /api/users/:id/role?role=.
func (ctrl *AdminController) UpdateUserRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	role, valid := domain.ParseRole(c.Query("role"))
	if !valid {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_role",
			Message: "Invalid role: " + c.Query("role"),
		})
		return
	}

	user, err := ctrl.service.UpdateUserRole(id, role)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "user_not_found",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "update_role_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "User role updated successfully",
		Data:    user,
	})
}

// DeleteUser handles DELETE /api/users/:id.
func (ctrl *AdminController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteUser(id); err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "delete_user_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "User deleted successfully",
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid user ID",
		})
		return 0, false
	}
	return uint(id), true
}
