package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
)

// CourseService handles course catalog operations
type CourseService struct {
	tx          TxManager
	courses     CourseStore
	enrollments EnrollmentStore

	// cascadeDelete controls deletion of courses that still have
	// enrollments: cascade removes the enrollments and rewrites the
	// affected users' course lists, otherwise the delete is rejected.
	cascadeDelete bool
}

// NewCourseService creates a new course service instance
func NewCourseService(tx TxManager, courses CourseStore, enrollments EnrollmentStore, cascadeDelete bool) *CourseService {
	return &CourseService{
		tx:            tx,
		courses:       courses,
		enrollments:   enrollments,
		cascadeDelete: cascadeDelete,
	}
}

// validateCourse validates course data before database operations
func (s *CourseService) validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: course name cannot be empty", apperrors.ErrValidationFailed)
	}

	if course.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidationFailed)
	}

	if course.AvailableSeats < 0 {
		return fmt.Errorf("%w: available seats cannot be negative", apperrors.ErrValidationFailed)
	}

	return nil
}

// CreateCourse creates a new course
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}

	course.Name = strings.TrimSpace(course.Name)
	if err := s.courses.Create(ctx, course); err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
				fmt.Sprintf("course not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetAllCourses retrieves all courses
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse updates an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}

	if course.ID <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	course.Name = strings.TrimSpace(course.Name)
	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.NewCustomError(apperrors.ErrCourseNotFound,
				fmt.Sprintf("course not found with id: %d", course.ID))
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// DeleteCourse deletes a course by ID. With cascade deletion enabled any
// remaining enrollments are removed and the enrolled users' course lists
// rewritten in the same transaction; otherwise a course with enrollments
// cannot be deleted.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, store Store) error {
		course, err := store.Courses.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrCourseNotFound) {
				return apperrors.NewCustomError(apperrors.ErrCourseNotFound,
					fmt.Sprintf("course not found with id: %d", id))
			}
			return err
		}

		enrollments, err := store.Enrollments.GetAllByCourse(ctx, id)
		if err != nil {
			return err
		}

		if len(enrollments) > 0 && !s.cascadeDelete {
			return apperrors.NewCustomError(apperrors.ErrCourseHasEnrollments,
				fmt.Sprintf("course %d has %d enrollments and cannot be deleted", id, len(enrollments)))
		}

		for _, enrollment := range enrollments {
			user, err := store.Users.GetByID(ctx, enrollment.UserID)
			if err != nil {
				return err
			}
			if err := store.Users.UpdateCourses(ctx, user.ID, removeCourseFromList(user.Courses, course.Name)); err != nil {
				return err
			}
			if err := store.Enrollments.Delete(ctx, enrollment.ID); err != nil {
				return err
			}
		}

		return store.Courses.Delete(ctx, id)
	})
}
