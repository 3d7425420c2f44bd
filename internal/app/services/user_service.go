package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
	"github.com/edutech-cl/platform/internal/pkg/auth"
)

// UserService handles user directory operations
type UserService struct {
	tx          TxManager
	users       UserStore
	courses     CourseStore
	enrollments EnrollmentStore
	lgr         zerolog.Logger

	// cascadeDelete controls deletion of users that still have
	// enrollments: cascade removes the enrollments and returns each
	// course's seat, otherwise the delete is rejected.
	cascadeDelete bool
}

// NewUserService creates a new user service instance
func NewUserService(tx TxManager, users UserStore, courses CourseStore, enrollments EnrollmentStore, cascadeDelete bool, lgr zerolog.Logger) *UserService {
	return &UserService{
		tx:            tx,
		users:         users,
		courses:       courses,
		enrollments:   enrollments,
		cascadeDelete: cascadeDelete,
		lgr:           lgr,
	}
}

// validateUser validates caller-supplied user fields
func (s *UserService) validateUser(user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(user.Run) == "" {
		return fmt.Errorf("%w: run cannot be empty", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(user.FirstName) == "" || strings.TrimSpace(user.LastName) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}

	return nil
}

// RegisterUser hashes the password and persists a new user
func (s *UserService) RegisterUser(ctx context.Context, user *models.User, password string) error {
	if err := s.validateUser(user); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrRunAlreadyExists) {
			return apperrors.NewCustomError(apperrors.ErrRunAlreadyExists,
				fmt.Sprintf("user with run %s already exists", user.Run))
		}
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
				fmt.Sprintf("user with email %s already exists", user.Email))
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	s.lgr.Info().Int64("userId", user.ID).Str("run", user.Run).Msg("User registered")
	return nil
}

// Authenticate verifies credentials and returns the matching user
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound,
				fmt.Sprintf("user not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByRun retrieves a user by its unique run
func (s *UserService) GetUserByRun(ctx context.Context, run string) (*models.User, error) {
	if strings.TrimSpace(run) == "" {
		return nil, fmt.Errorf("%w: run cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.users.GetByRun(ctx, run)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound,
				fmt.Sprintf("user not found with run: %s", run))
		}
		return nil, fmt.Errorf("error retrieving user by run: %w", err)
	}

	return user, nil
}

// GetAllUsers retrieves all users
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, nil
}

// GetUsersByRole retrieves all users with the given role. An unknown
// role yields an empty result, not an error.
func (s *UserService) GetUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	users, err := s.users.GetByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users by role: %w", err)
	}
	return users, nil
}

// UpdateUser updates an existing user's profile fields
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) error {
	if err := s.validateUser(user); err != nil {
		return err
	}

	if user.ID <= 0 {
		return fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewCustomError(apperrors.ErrUserNotFound,
				fmt.Sprintf("user not found with id: %d", user.ID))
		}
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists,
				fmt.Sprintf("user with email %s already exists", user.Email))
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// DeleteUser deletes a user by ID. With cascade deletion enabled any
// remaining enrollments are removed and each course's seat returned in
// the same transaction; otherwise a user with enrollments cannot be
// deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, store Store) error {
		if _, err := store.Users.GetByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return apperrors.NewCustomError(apperrors.ErrUserNotFound,
					fmt.Sprintf("user not found with id: %d", id))
			}
			return err
		}

		enrollments, err := store.Enrollments.GetAllByUser(ctx, id)
		if err != nil {
			return err
		}

		if len(enrollments) > 0 && !s.cascadeDelete {
			return apperrors.NewCustomError(apperrors.ErrUserHasEnrollments,
				fmt.Sprintf("user %d has %d enrollments and cannot be deleted", id, len(enrollments)))
		}

		for _, enrollment := range enrollments {
			if err := store.Courses.ReleaseSeat(ctx, enrollment.CourseID); err != nil {
				return err
			}
			if err := store.Enrollments.Delete(ctx, enrollment.ID); err != nil {
				return err
			}
		}

		return store.Users.Delete(ctx, id)
	})
}
