package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutech-cl/platform/internal/app/models/dto"
	"github.com/edutech-cl/platform/internal/app/services"
	"github.com/edutech-cl/platform/internal/middleware"
)

// EnrollmentController handles enrollment-related operations
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// GetAllEnrollments lists every enrollment
// @Summary List enrollments
// @Description Retrieves all enrollments with their related user and course
// @Tags enrollments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments retrieved successfully"
// @Success 204 "No enrollments exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) GetAllEnrollments(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.ListAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(enrollments) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}

	responses := make([]*dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, dto.ToEnrollmentResponse(enrollment))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetEnrollmentByID retrieves an enrollment by ID
// @Summary Get enrollment by ID
// @Description Retrieves a specific enrollment by its ID
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollmentByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment ID format")))
		return
	}

	enrollment, err := c.enrollmentService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ToEnrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// GetEnrollmentsByUser lists the enrollments of one user
// @Summary List enrollments by user
// @Description Retrieves all enrollments belonging to the given user
// @Tags enrollments
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments retrieved successfully"
// @Success 204 "User has no enrollments"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/user/{userId} [get]
func (c *EnrollmentController) GetEnrollmentsByUser(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID format")))
		return
	}

	enrollments, err := c.enrollmentService.ListByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(enrollments) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}

	responses := make([]*dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, dto.ToEnrollmentResponse(enrollment))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// CreateEnrollment enrolls a user into a course
// @Summary Enroll a user in a course
// @Description Enrolls the given user in the given course, taking one seat and updating the user's course list
// @Tags enrollments
// @Produce json
// @Param userId query int true "User ID"
// @Param courseId query int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid ids"
// @Failure 404 {object} dto.ErrorResponse "User or course not found"
// @Failure 409 {object} dto.ErrorResponse "User already enrolled or no seats available"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Query("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Query parameter userId is required and must be numeric")))
		return
	}
	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Query parameter courseId is required and must be numeric")))
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.ToEnrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// UpdateEnrollment moves an enrollment to another user and/or course
// @Summary Update an enrollment
// @Description Reassigns an enrollment to a different user and/or course, transferring the seat and course list entries
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param userId query int false "New user ID"
// @Param courseId query int false "New course ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ids or no changes requested"
// @Failure 404 {object} dto.ErrorResponse "Enrollment, user or course not found"
// @Failure 409 {object} dto.ErrorResponse "Target combination already enrolled or no seats available"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [put]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment ID format")))
		return
	}

	var newUserID, newCourseID *int64
	if raw := ctx.Query("userId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Query parameter userId must be numeric")))
			return
		}
		newUserID = &parsed
	}
	if raw := ctx.Query("courseId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Query parameter courseId must be numeric")))
			return
		}
		newCourseID = &parsed
	}

	enrollment, err := c.enrollmentService.UpdateByIDs(ctx, id, newUserID, newCourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ToEnrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// DeleteEnrollment removes an enrollment
// @Summary Delete an enrollment
// @Description Deletes an enrollment, releasing the course seat and removing the course from the user's list
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 204 "Enrollment deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment ID format")))
		return
	}

	if err := c.enrollmentService.Remove(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
