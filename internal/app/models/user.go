package models

import "time"

// Role values stored in the users.role column.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User defines a platform user based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Run       string    `json:"run" db:"run" example:"12345678-9"` // Unique national identifier
	FirstName string    `json:"firstName" db:"first_name" example:"Maria"`
	LastName  string    `json:"lastName" db:"last_name" example:"Gonzalez"`
	BirthDate time.Time `json:"birthDate" db:"birth_date" example:"2000-05-14T00:00:00Z"`
	Email     string    `json:"email" db:"email" example:"maria@edutech.cl"`
	Role      string    `json:"role" db:"role" example:"student"`

	// Courses is a denormalized, ", "-separated projection of the names of
	// the courses this user is enrolled in. It is written only by the
	// enrollment service and is not authoritative over the enrollments table.
	Courses string `json:"courses" db:"courses" example:"Math, Physics"`

	// Password hash, never serialized
	PasswordHash string `json:"-" db:"password_hash"`
}
