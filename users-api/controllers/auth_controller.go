package controllers

import (
	"net/http"

	"roomrental/users-api/dto"
	"roomrental/users-api/services"

	"github.com/gin-gonic/gin"
)

// AuthController handles the public auth endpoints.
type AuthController struct {
	service services.AuthService
}

// NewAuthController builds the controller.
func NewAuthController(service services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Signup handles POST /api/auth/signup.
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	user, err := ctrl.service.Register(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "signup_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "User registered successfully",
		Data:    user,
	})
}

// Signin handles POST /api/auth/signin.
func (ctrl *AuthController) Signin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := ctrl.service.Login(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "signin_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck handles GET /health.
func (ctrl *AuthController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "users-api",
	})
}
