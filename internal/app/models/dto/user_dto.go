package dto

import "time"

// CreateUserRequest is the payload for registering a new user
type CreateUserRequest struct {
	Run       string    `json:"run" binding:"required" example:"12345678-9"`
	FirstName string    `json:"firstName" binding:"required" example:"Maria"`
	LastName  string    `json:"lastName" binding:"required" example:"Gonzalez"`
	BirthDate time.Time `json:"birthDate" binding:"required" example:"2000-05-14T00:00:00Z"`
	Email     string    `json:"email" binding:"required,email" example:"maria@edutech.cl"`
	Role      string    `json:"role" binding:"required,oneof=student teacher admin" example:"student"`
	Password  string    `json:"password" binding:"required,min=8" example:"s3cretpass"`
}

// UpdateUserRequest is the payload for updating a user's profile fields.
// The courses projection is not updatable through this endpoint.
type UpdateUserRequest struct {
	FirstName string    `json:"firstName" binding:"required" example:"Maria"`
	LastName  string    `json:"lastName" binding:"required" example:"Gonzalez"`
	BirthDate time.Time `json:"birthDate" binding:"required" example:"2000-05-14T00:00:00Z"`
	Email     string    `json:"email" binding:"required,email" example:"maria@edutech.cl"`
	Role      string    `json:"role" binding:"required,oneof=student teacher admin" example:"student"`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Run       string    `json:"run" example:"12345678-9"`
	FirstName string    `json:"firstName" example:"Maria"`
	LastName  string    `json:"lastName" example:"Gonzalez"`
	BirthDate time.Time `json:"birthDate" example:"2000-05-14T00:00:00Z"`
	Email     string    `json:"email" example:"maria@edutech.cl"`
	Role      string    `json:"role" example:"student"`
	Courses   string    `json:"courses" example:"Math, Physics"`
}
