package dto

import (
	"time"

	"github.com/edutech-cl/platform/internal/app/models"
)

// CourseResponse is the public representation of a course
type CourseResponse struct {
	ID             int64   `json:"id" example:"1"`
	Name           string  `json:"name" example:"Math"`
	Price          float64 `json:"price" example:"49990"`
	Duration       string  `json:"duration" example:"8 weeks"`
	AvailableSeats int     `json:"availableSeats" example:"30"`
}

// EnrollmentResponse is the public representation of an enrollment,
// with the related user and course when they were loaded
type EnrollmentResponse struct {
	ID             int64           `json:"id" example:"1"`
	UserID         int64           `json:"userId" example:"1"`
	CourseID       int64           `json:"courseId" example:"1"`
	EnrollmentDate time.Time       `json:"enrollmentDate" example:"2025-03-01T12:00:00Z"`
	User           *UserResponse   `json:"user,omitempty"`
	Course         *CourseResponse `json:"course,omitempty"`
}

func ToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Run:       user.Run,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: user.BirthDate,
		Email:     user.Email,
		Role:      user.Role,
		Courses:   user.Courses,
	}
}

func ToCourseResponse(course *models.Course) *CourseResponse {
	if course == nil {
		return nil
	}
	return &CourseResponse{
		ID:             course.ID,
		Name:           course.Name,
		Price:          course.Price,
		Duration:       course.Duration,
		AvailableSeats: course.AvailableSeats,
	}
}

func ToEnrollmentResponse(enrollment *models.Enrollment) *EnrollmentResponse {
	if enrollment == nil {
		return nil
	}
	return &EnrollmentResponse{
		ID:             enrollment.ID,
		UserID:         enrollment.UserID,
		CourseID:       enrollment.CourseID,
		EnrollmentDate: enrollment.EnrollmentDate,
		User:           ToUserResponse(enrollment.User),
		Course:         ToCourseResponse(enrollment.Course),
	}
}
