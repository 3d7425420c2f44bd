package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
)

func newCourseFixture(cascadeDelete bool) (*CourseService, *UserStoreMock, *CourseStoreMock, *EnrollmentStoreMock) {
	users := new(UserStoreMock)
	courses := new(CourseStoreMock)
	enrollments := new(EnrollmentStoreMock)
	tx := newTxManagerStub(users, courses, enrollments)
	svc := NewCourseService(tx, courses, enrollments, cascadeDelete)
	return svc, users, courses, enrollments
}

func TestCourseService_CreateCourse(t *testing.T) {
	svc, _, courses, _ := newCourseFixture(false)

	courses.On("Create", mock.Anything, mock.AnythingOfType("*models.Course")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Course).ID = 5
		}).Return(nil)

	course := &models.Course{Name: "  Math  ", Price: 49990, AvailableSeats: 30}
	err := svc.CreateCourse(context.Background(), course)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), course.ID)
	assert.Equal(t, "Math", course.Name)
}

func TestCourseService_CreateCourse_Validation(t *testing.T) {
	tests := []struct {
		name   string
		course *models.Course
	}{
		{name: "nil course", course: nil},
		{name: "blank name", course: &models.Course{Name: "   "}},
		{name: "negative price", course: &models.Course{Name: "Math", Price: -1}},
		{name: "negative seats", course: &models.Course{Name: "Math", AvailableSeats: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, courses, _ := newCourseFixture(false)

			err := svc.CreateCourse(context.Background(), tt.course)

			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			courses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCourseService_GetCourseByID_NotFound(t *testing.T) {
	svc, _, courses, _ := newCourseFixture(false)

	courses.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrCourseNotFound)

	course, err := svc.GetCourseByID(context.Background(), 99)

	assert.Nil(t, course)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.Contains(t, err.Error(), "99")
}

func TestCourseService_DeleteCourse_RejectedWithEnrollments(t *testing.T) {
	svc, _, courses, enrollments := newCourseFixture(false)

	courses.On("GetByID", mock.Anything, int64(2)).Return(&models.Course{ID: 2, Name: "Math"}, nil)
	enrollments.On("GetAllByCourse", mock.Anything, int64(2)).
		Return([]*models.Enrollment{{ID: 3, UserID: 1, CourseID: 2}}, nil)

	err := svc.DeleteCourse(context.Background(), 2)

	assert.ErrorIs(t, err, apperrors.ErrCourseHasEnrollments)
	courses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCourseService_DeleteCourse_Cascade(t *testing.T) {
	svc, users, courses, enrollments := newCourseFixture(true)

	courses.On("GetByID", mock.Anything, int64(2)).Return(&models.Course{ID: 2, Name: "Math"}, nil)
	enrollments.On("GetAllByCourse", mock.Anything, int64(2)).
		Return([]*models.Enrollment{{ID: 3, UserID: 1, CourseID: 2}}, nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(&models.User{ID: 1, Courses: "Math, Physics"}, nil)
	users.On("UpdateCourses", mock.Anything, int64(1), "Physics").Return(nil)
	enrollments.On("Delete", mock.Anything, int64(3)).Return(nil)
	courses.On("Delete", mock.Anything, int64(2)).Return(nil)

	err := svc.DeleteCourse(context.Background(), 2)

	assert.NoError(t, err)
	users.AssertExpectations(t)
	courses.AssertExpectations(t)
	enrollments.AssertExpectations(t)
}

func TestCourseService_DeleteCourse_NotFound(t *testing.T) {
	svc, _, courses, _ := newCourseFixture(false)

	courses.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrCourseNotFound)

	err := svc.DeleteCourse(context.Background(), 99)

	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
