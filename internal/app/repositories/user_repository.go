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

// UserRepository handles database operations for users
type UserRepository struct {
	db Querier
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

const userColumns = "id, run, first_name, last_name, birth_date, email, role, courses, password_hash"

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Run,
		&user.FirstName,
		&user.LastName,
		&user.BirthDate,
		&user.Email,
		&user.Role,
		&user.Courses,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (run, first_name, last_name, birth_date, email, role, courses, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		user.Run, user.FirstName, user.LastName, user.BirthDate,
		user.Email, user.Role, user.Courses, user.PasswordHash,
	).Scan(&user.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err, "users_run_key") {
			return apperrors.ErrRunAlreadyExists
		}
		if dberrors.IsUniqueViolation(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByRun retrieves a user by its unique run
func (r *UserRepository) GetByRun(ctx context.Context, run string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE run = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, run))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by run: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// GetAll retrieves all users
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	return r.queryUsers(ctx, query)
}

// GetByRole retrieves all users with the given role
func (r *UserRepository) GetByRole(ctx context.Context, role string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`

	return r.queryUsers(ctx, query, role)
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Update updates an existing user's profile fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, birth_date = $3, email = $4, role = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		user.FirstName, user.LastName, user.BirthDate, user.Email, user.Role, user.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateCourses rewrites the denormalized course-list projection for a user
func (r *UserRepository) UpdateCourses(ctx context.Context, userID int64, courses string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET courses = $1 WHERE id = $2`, courses, userID)
	if err != nil {
		return fmt.Errorf("error updating user courses: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
