package models

import "time"

// Enrollment links a user to a course. At most one enrollment may exist
// for a given (user, course) pair, enforced by a unique constraint on
// (user_id, course_id).
type Enrollment struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	UserID         int64     `json:"userId" db:"user_id" example:"5"`
	CourseID       int64     `json:"courseId" db:"course_id" example:"3"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date" example:"2025-03-01T00:00:00Z"`

	// Relations (populated when needed)
	User   *User   `json:"user,omitempty"`
	Course *Course `json:"course,omitempty"`
}
