package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup handles new account registration
// @Summary Register a new account
// @Description Creates a user account and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.authService.Signup(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Account created successfully"))
}

// Login handles user authentication
// @Summary Log in
// @Description Authenticates a user and returns an access token. An optional
// @Description role may be selected when the user holds more than one.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Role not assigned to this user"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Logged in successfully"))
}

// SwitchRole switches the caller's active role
// @Summary Switch active role
// @Description Re-issues the access token with a different assigned role
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SwitchRoleRequest true "Role to activate"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Role switched"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role not assigned to this user"
// @Router /auth/switch-role [post]
func (c *AuthController) SwitchRole(ctx *gin.Context) {
	var req dto.SwitchRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.authService.SwitchRole(ctx, currentUserID(ctx), req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Role switched successfully"))
}

// GetCurrentUser returns the authenticated user's profile
// @Summary Current user
// @Description Retrieves the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "Current user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /auth/me [get]
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	user, err := c.authService.GetCurrentUser(ctx, currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, ""))
}
