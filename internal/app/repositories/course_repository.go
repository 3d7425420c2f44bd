package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db Querier
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *CourseRepository) WithTx(tx pgx.Tx) *CourseRepository {
	return &CourseRepository{db: tx}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (name, price, duration, available_seats)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.Name, course.Price, course.Duration, course.AvailableSeats,
	).Scan(&course.ID)

	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, name, price, duration, available_seats
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Price,
		&course.Duration,
		&course.AvailableSeats,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT id, name, price, duration, available_seats
		FROM courses
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Price,
			&course.Duration,
			&course.AvailableSeats,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, price = $2, duration = $3, available_seats = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Name, course.Price, course.Duration, course.AvailableSeats, course.ID)

	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// TakeSeat atomically decrements the available seat counter, refusing to
// go below zero. The seats > 0 check lives in the UPDATE predicate so
// concurrent enrollments cannot race past it. Returns false when the
// course was found but had no seats left.
func (r *CourseRepository) TakeSeat(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET available_seats = available_seats - 1
		WHERE id = $1 AND available_seats > 0`, id)

	if err != nil {
		return false, fmt.Errorf("error taking seat: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Distinguish a full course from a missing one
		if _, err := r.GetByID(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}

// ReleaseSeat returns one seat to the course
func (r *CourseRepository) ReleaseSeat(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET available_seats = available_seats + 1
		WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error releasing seat: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
