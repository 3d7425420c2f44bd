package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutech-cl/platform/internal/app/models/dto"
	"github.com/edutech-cl/platform/internal/app/services"
	"github.com/edutech-cl/platform/internal/middleware"
	"github.com/edutech-cl/platform/internal/pkg/auth"
)

// AuthController handles authentication operations
type AuthController struct {
	userService *services.UserService
	jwtService  *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService, jwtService *auth.JWTService) *AuthController {
	return &AuthController{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Login authenticates a user and issues an access token
// @Summary Log in
// @Description Authenticates a user by email and password and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Authenticated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, expiresIn, err := c.jwtService.GenerateToken(user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.LoginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
			User:        dto.ToUserResponse(user),
		},
		Timestamp: time.Now(),
	})
}
