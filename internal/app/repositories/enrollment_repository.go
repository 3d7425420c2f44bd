package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
	"github.com/edutech-cl/platform/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db Querier
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *EnrollmentRepository) WithTx(tx pgx.Tx) *EnrollmentRepository {
	return &EnrollmentRepository{db: tx}
}

// Create inserts a new enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (user_id, course_id, enrollment_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.UserID, enrollment.CourseID, enrollment.EnrollmentDate,
	).Scan(&enrollment.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err, "enrollments_user_id_course_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, enrollment_date
		FROM enrollments
		WHERE id = $1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.EnrollmentDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetAll retrieves all enrollments
func (r *EnrollmentRepository) GetAll(ctx context.Context) ([]*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, enrollment_date
		FROM enrollments
		ORDER BY id
	`

	return r.queryEnrollments(ctx, query)
}

// GetAllByUser retrieves all enrollments referencing a user
func (r *EnrollmentRepository) GetAllByUser(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, enrollment_date
		FROM enrollments
		WHERE user_id = $1
		ORDER BY id
	`

	return r.queryEnrollments(ctx, query, userID)
}

// GetAllByCourse retrieves all enrollments referencing a course
func (r *EnrollmentRepository) GetAllByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, enrollment_date
		FROM enrollments
		WHERE course_id = $1
		ORDER BY id
	`

	return r.queryEnrollments(ctx, query, courseID)
}

func (r *EnrollmentRepository) queryEnrollments(ctx context.Context, query string, args ...any) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.CourseID,
			&enrollment.EnrollmentDate,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ExistsByUserAndCourse checks if an enrollment exists for a (user, course) pair
func (r *EnrollmentRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}

	return exists, nil
}

// Update updates the user/course references of an existing enrollment
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		UPDATE enrollments
		SET user_id = $1, course_id = $2, enrollment_date = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		enrollment.UserID, enrollment.CourseID, enrollment.EnrollmentDate, enrollment.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err, "enrollments_user_id_course_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error updating enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete deletes an enrollment by ID
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
