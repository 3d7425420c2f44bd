package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
)

// EnrollmentService keeps enrollment rows, course seat counters and the
// denormalized per-user course-list strings mutually consistent. Every
// multi-entity mutation runs inside a single transaction, and the seat
// decrement is a conditional update, so concurrent enrollments cannot
// drive a course's seat counter below zero.
type EnrollmentService struct {
	tx          TxManager
	users       UserStore
	courses     CourseStore
	enrollments EnrollmentStore
	lgr         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(tx TxManager, users UserStore, courses CourseStore, enrollments EnrollmentStore, lgr zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		tx:          tx,
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		lgr:         lgr,
	}
}

// ListAll retrieves all enrollments
func (s *EnrollmentService) ListAll(ctx context.Context) ([]*models.Enrollment, error) {
	enrollments, err := s.enrollments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	return enrollments, nil
}

// ListByUser retrieves all enrollments for a user. The user must exist;
// a user with no enrollments yields an empty result.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound,
				fmt.Sprintf("user not found with id: %d", userID))
		}
		return nil, fmt.Errorf("error checking user: %w", err)
	}

	enrollments, err := s.enrollments.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments for user: %w", err)
	}
	return enrollments, nil
}

// GetByID retrieves an enrollment by ID with its user and course attached
func (s *EnrollmentService) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrEnrollmentNotFound,
				fmt.Sprintf("enrollment not found with id: %d", id))
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	s.attachRelations(ctx, enrollment)
	return enrollment, nil
}

// Enroll registers a user into a course: it takes one seat, appends the
// course name to the user's course list and creates the enrollment row,
// all in one transaction.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	if userID <= 0 || courseID <= 0 {
		return nil, apperrors.NewBadRequestError("user id and course id are required")
	}

	var enrollment *models.Enrollment
	err := s.tx.WithinTx(ctx, func(ctx context.Context, store Store) error {
		user, err := store.Users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return apperrors.NewCustomError(apperrors.ErrUserNotFound,
					fmt.Sprintf("user not found with id: %d", userID))
			}
			return err
		}

		course, err := store.Courses.GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrCourseNotFound) {
				return apperrors.NewCustomError(apperrors.ErrCourseNotFound,
					fmt.Sprintf("course not found with id: %d", courseID))
			}
			return err
		}

		enrolled, err := store.Enrollments.ExistsByUserAndCourse(ctx, userID, courseID)
		if err != nil {
			return err
		}
		if enrolled {
			return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
				fmt.Sprintf("user %d is already enrolled in course %d", userID, courseID))
		}

		taken, err := store.Courses.TakeSeat(ctx, courseID)
		if err != nil {
			return err
		}
		if !taken {
			return apperrors.NewCustomError(apperrors.ErrNoSeatsAvailable,
				fmt.Sprintf("no seats available for course %d", courseID))
		}
		course.AvailableSeats--

		user.Courses = addCourseToList(user.Courses, course.Name)
		if err := store.Users.UpdateCourses(ctx, user.ID, user.Courses); err != nil {
			return err
		}

		enrollment = &models.Enrollment{
			UserID:         userID,
			CourseID:       courseID,
			EnrollmentDate: time.Now(),
		}
		if err := store.Enrollments.Create(ctx, enrollment); err != nil {
			return err
		}

		enrollment.User = user
		enrollment.Course = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lgr.Info().
		Int64("enrollmentId", enrollment.ID).
		Int64("userId", userID).
		Int64("courseId", courseID).
		Msg("User enrolled in course")

	return enrollment, nil
}

// UpdateByIDs reassigns an enrollment's user and/or course. At least one
// of the new ids must be provided and actually differ from the current
// value. Seat counters move only on a course change; the course-list
// edit is applied exactly once, against whichever user ends up owning
// the enrollment.
func (s *EnrollmentService) UpdateByIDs(ctx context.Context, id int64, newUserID, newCourseID *int64) (*models.Enrollment, error) {
	if newUserID == nil && newCourseID == nil {
		return nil, apperrors.NewBadRequestError("no changes requested: provide a new user id and/or course id")
	}

	var enrollment *models.Enrollment
	err := s.tx.WithinTx(ctx, func(ctx context.Context, store Store) error {
		var err error
		enrollment, err = store.Enrollments.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
				return apperrors.NewCustomError(apperrors.ErrEnrollmentNotFound,
					fmt.Sprintf("enrollment not found with id: %d", id))
			}
			return err
		}

		oldUserID, oldCourseID := enrollment.UserID, enrollment.CourseID
		finalUserID, finalCourseID := oldUserID, oldCourseID

		var newUser *models.User
		if newUserID != nil && *newUserID != oldUserID {
			newUser, err = store.Users.GetByID(ctx, *newUserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return apperrors.NewCustomError(apperrors.ErrUserNotFound,
						fmt.Sprintf("user not found with id: %d", *newUserID))
				}
				return err
			}

			enrolled, err := store.Enrollments.ExistsByUserAndCourse(ctx, *newUserID, oldCourseID)
			if err != nil {
				return err
			}
			if enrolled {
				return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
					fmt.Sprintf("user %d is already enrolled in course %d", *newUserID, oldCourseID))
			}

			finalUserID = *newUserID
		}

		var newCourse *models.Course
		if newCourseID != nil && *newCourseID != oldCourseID {
			newCourse, err = store.Courses.GetByID(ctx, *newCourseID)
			if err != nil {
				if errors.Is(err, apperrors.ErrCourseNotFound) {
					return apperrors.NewCustomError(apperrors.ErrCourseNotFound,
						fmt.Sprintf("course not found with id: %d", *newCourseID))
				}
				return err
			}

			enrolled, err := store.Enrollments.ExistsByUserAndCourse(ctx, finalUserID, *newCourseID)
			if err != nil {
				return err
			}
			if enrolled {
				return apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
					fmt.Sprintf("user %d is already enrolled in course %d", finalUserID, *newCourseID))
			}

			finalCourseID = *newCourseID
		}

		if finalUserID == oldUserID && finalCourseID == oldCourseID {
			return apperrors.NewBadRequestError("no changes requested: the provided ids match the current enrollment")
		}

		if finalCourseID != oldCourseID {
			taken, err := store.Courses.TakeSeat(ctx, finalCourseID)
			if err != nil {
				return err
			}
			if !taken {
				return apperrors.NewCustomError(apperrors.ErrNoSeatsAvailable,
					fmt.Sprintf("no seats available for course %d", finalCourseID))
			}
			newCourse.AvailableSeats--

			if err := store.Courses.ReleaseSeat(ctx, oldCourseID); err != nil {
				return err
			}
		}

		oldUser, err := store.Users.GetByID(ctx, oldUserID)
		if err != nil {
			return err
		}
		oldCourse, err := store.Courses.GetByID(ctx, oldCourseID)
		if err != nil {
			return err
		}

		finalCourse := oldCourse
		if newCourse != nil {
			finalCourse = newCourse
		}

		// Rewrite the course-list projections: the previous owner loses
		// the old course name, the final owner gains the final course
		// name. When the owner is unchanged both edits land on the same
		// user in one write.
		removed := removeCourseFromList(oldUser.Courses, oldCourse.Name)
		if finalUserID == oldUserID {
			oldUser.Courses = addCourseToList(removed, finalCourse.Name)
			if err := store.Users.UpdateCourses(ctx, oldUserID, oldUser.Courses); err != nil {
				return err
			}
		} else {
			if err := store.Users.UpdateCourses(ctx, oldUserID, removed); err != nil {
				return err
			}
			newUser.Courses = addCourseToList(newUser.Courses, finalCourse.Name)
			if err := store.Users.UpdateCourses(ctx, finalUserID, newUser.Courses); err != nil {
				return err
			}
		}

		enrollment.UserID = finalUserID
		enrollment.CourseID = finalCourseID
		if err := store.Enrollments.Update(ctx, enrollment); err != nil {
			return err
		}

		if newUser != nil {
			enrollment.User = newUser
		} else {
			enrollment.User = oldUser
		}
		enrollment.Course = finalCourse
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lgr.Info().
		Int64("enrollmentId", enrollment.ID).
		Int64("userId", enrollment.UserID).
		Int64("courseId", enrollment.CourseID).
		Msg("Enrollment updated")

	return enrollment, nil
}

// Remove deletes an enrollment, returning the seat to the course and
// removing the course name from the user's course list.
func (s *EnrollmentService) Remove(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, store Store) error {
		enrollment, err := store.Enrollments.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
				return apperrors.NewCustomError(apperrors.ErrEnrollmentNotFound,
					fmt.Sprintf("enrollment not found with id: %d", id))
			}
			return err
		}

		course, err := store.Courses.GetByID(ctx, enrollment.CourseID)
		if err != nil {
			return err
		}

		if err := store.Courses.ReleaseSeat(ctx, enrollment.CourseID); err != nil {
			return err
		}

		user, err := store.Users.GetByID(ctx, enrollment.UserID)
		if err != nil {
			return err
		}

		user.Courses = removeCourseFromList(user.Courses, course.Name)
		if err := store.Users.UpdateCourses(ctx, user.ID, user.Courses); err != nil {
			return err
		}

		return store.Enrollments.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.lgr.Info().Int64("enrollmentId", id).Msg("Enrollment removed")
	return nil
}

// attachRelations populates the user and course references on a best
// effort basis; a failed lookup leaves the reference nil.
func (s *EnrollmentService) attachRelations(ctx context.Context, enrollment *models.Enrollment) {
	if user, err := s.users.GetByID(ctx, enrollment.UserID); err == nil {
		enrollment.User = user
	}
	if course, err := s.courses.GetByID(ctx, enrollment.CourseID); err == nil {
		enrollment.Course = course
	}
}
