package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/app/models/dto"
	"github.com/edutech-cl/platform/internal/app/services"
	"github.com/edutech-cl/platform/internal/middleware"
)

// UserController handles user directory operations
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser registers a new user
// @Summary Register a new user
// @Description Registers a new user with the provided information
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user data"
// @Failure 409 {object} dto.ErrorResponse "RUN or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user := &models.User{
		Run:       req.Run,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Email:     req.Email,
		Role:      req.Role,
	}

	if err := c.userService.RegisterUser(ctx, user, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.ToUserResponse(user),
		Timestamp: time.Now(),
	})
}

// GetAllUsers lists users, optionally filtered by role
// @Summary List users
// @Description Retrieves all users, optionally filtered by role
// @Tags users
// @Produce json
// @Param role query string false "Filter by role" Enums(student, teacher, admin)
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Users retrieved successfully"
// @Success 204 "No users match"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	var users []*models.User
	var err error

	if role := ctx.Query("role"); role != "" {
		users, err = c.userService.GetUsersByRole(ctx, role)
	} else {
		users, err = c.userService.GetAllUsers(ctx)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(users) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.ToUserResponse(user))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetUserByID retrieves a user by ID
// @Summary Get user by ID
// @Description Retrieves a specific user by their ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID format")))
		return
	}

	user, err := c.userService.GetUserByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ToUserResponse(user),
		Timestamp: time.Now(),
	})
}

// GetUserByRun retrieves a user by RUN
// @Summary Get user by RUN
// @Description Retrieves a specific user by their national identifier
// @Tags users
// @Produce json
// @Param run path string true "User RUN"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/run/{run} [get]
func (c *UserController) GetUserByRun(ctx *gin.Context) {
	user, err := c.userService.GetUserByRun(ctx, ctx.Param("run"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ToUserResponse(user),
		Timestamp: time.Now(),
	})
}

// UpdateUser replaces a user's profile fields
// @Summary Update a user
// @Description Updates an existing user's profile. The RUN and course list cannot be changed here
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "User information"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID format")))
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user := &models.User{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Email:     req.Email,
		Role:      req.Role,
	}

	if err := c.userService.UpdateUser(ctx, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.userService.GetUserByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ToUserResponse(updated),
		Timestamp: time.Now(),
	})
}

// DeleteUser removes a user
// @Summary Delete a user
// @Description Deletes a user. Users with active enrollments are rejected unless cascade deletion is enabled
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 204 "User deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "User has active enrollments"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID format")))
		return
	}

	if err := c.userService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
