package services

import (
	"context"

	"github.com/edutech-cl/platform/internal/app/models"
)

// UserStore is the user persistence surface the services depend on.
// Implemented by repositories.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByRun(ctx context.Context, run string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByRole(ctx context.Context, role string) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateCourses(ctx context.Context, userID int64, courses string) error
	Delete(ctx context.Context, id int64) error
}

// CourseStore is the course persistence surface the services depend on.
// Implemented by repositories.CourseRepository.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	TakeSeat(ctx context.Context, id int64) (bool, error)
	ReleaseSeat(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore is the enrollment persistence surface the services
// depend on. Implemented by repositories.EnrollmentRepository.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context) ([]*models.Enrollment, error)
	GetAllByUser(ctx context.Context, userID int64) ([]*models.Enrollment, error)
	GetAllByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	ExistsByUserAndCourse(ctx context.Context, userID, courseID int64) (bool, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// Store bundles the per-entity stores that participate in one
// multi-entity mutation.
type Store struct {
	Users       UserStore
	Courses     CourseStore
	Enrollments EnrollmentStore
}

// TxManager runs a function against a Store whose writes all commit or
// roll back together. Seat counters, course-list strings and enrollment
// rows are only ever mutated through this boundary.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
