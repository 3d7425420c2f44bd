package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/edutech-cl/platform/internal/app/models"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
)

func newEnrollmentFixture() (*EnrollmentService, *UserStoreMock, *CourseStoreMock, *EnrollmentStoreMock) {
	users := new(UserStoreMock)
	courses := new(CourseStoreMock)
	enrollments := new(EnrollmentStoreMock)
	tx := newTxManagerStub(users, courses, enrollments)
	svc := NewEnrollmentService(tx, users, courses, enrollments, newNoopLogger())
	return svc, users, courses, enrollments
}

func TestEnrollmentService_Enroll(t *testing.T) {
	svc, users, courses, enrollments := newEnrollmentFixture()

	user := &models.User{ID: 1, Run: "12345678-9", FirstName: "Maria", Courses: "Physics"}
	course := &models.Course{ID: 2, Name: "Math", AvailableSeats: 10}

	users.On("GetByID", mock.Anything, int64(1)).Return(user, nil)
	courses.On("GetByID", mock.Anything, int64(2)).Return(course, nil)
	enrollments.On("ExistsByUserAndCourse", mock.Anything, int64(1), int64(2)).Return(false, nil)
	courses.On("TakeSeat", mock.Anything, int64(2)).Return(true, nil)
	users.On("UpdateCourses", mock.Anything, int64(1), "Physics, Math").Return(nil)
	enrollments.On("Create", mock.Anything, mock.AnythingOfType("*models.Enrollment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Enrollment).ID = 7
		}).Return(nil)

	enrollment, err := svc.Enroll(context.Background(), 1, 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), enrollment.ID)
	assert.Equal(t, int64(1), enrollment.UserID)
	assert.Equal(t, int64(2), enrollment.CourseID)
	assert.False(t, enrollment.EnrollmentDate.IsZero())
	assert.Equal(t, 9, enrollment.Course.AvailableSeats)
	assert.Equal(t, "Physics, Math", enrollment.User.Courses)
	users.AssertExpectations(t)
	courses.AssertExpectations(t)
	enrollments.AssertExpectations(t)
}

func TestEnrollmentService_Enroll_Errors(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		courseID   int64
		setupMocks func(users *UserStoreMock, courses *CourseStoreMock, enrollments *EnrollmentStoreMock)
		wantErr    error
	}{
		{
			name:       "missing ids",
			userID:     0,
			courseID:   2,
			setupMocks: func(users *UserStoreMock, courses *CourseStoreMock, enrollments *EnrollmentStoreMock) {},
			wantErr:    apperrors.ErrBadRequest,
		},
		{
			name:     "user not found",
			userID:   99,
			courseID: 2,
			setupMocks: func(users *UserStoreMock, courses *CourseStoreMock, enrollments *EnrollmentStoreMock) {
				users.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrUserNotFound)
			},
			wantErr: apperrors.ErrUserNotFound,
		},
		{
			name:     "course not found",
			userID:   1,
			courseID: 99,
			setupMocks: func(users *UserStoreMock, courses *CourseStoreMock, enrollments *EnrollmentStoreMock) {
				users.On("GetByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
				courses.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrCourseNotFound)
			},
			wantErr: apperrors.ErrCourseNotFound,
		},
		{
			name:     "already enrolled",
			userID:   1,
			courseID: 2,
			setupMocks: func(users *UserStoreMock, courses *CourseStoreMock, enrollments *EnrollmentStoreMock) {
				users.On("GetByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
				courses.On("GetByID", mock.Anything, int64(2)).Return(&models.Course{ID: 2, Name: "Math"}, nil)
				enrollments.On("ExistsByUserAndCourse", mock.Anything, int64(1), int64(2)).Return(true, nil)
			},
			wantErr: apperrors.ErrAlreadyEnrolled,
		},
		{
			name:     "no seats available",
			userID:   1,
			courseID: 2,
			setupMocks: func(users *UserStoreMock, courses *CourseStoreMock, enrollments *EnrollmentStoreMock) {
				users.On("GetByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
				courses.On("GetByID", mock.Anything, int64(2)).Return(&models.Course{ID: 2, Name: "Math", AvailableSeats: 0}, nil)
				enrollments.On("ExistsByUserAndCourse", mock.Anything, int64(1), int64(2)).Return(false, nil)
				courses.On("TakeSeat", mock.Anything, int64(2)).Return(false, nil)
			},
			wantErr: apperrors.ErrNoSeatsAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, courses, enrollments := newEnrollmentFixture()
			tt.setupMocks(users, courses, enrollments)

			enrollment, err := svc.Enroll(context.Background(), tt.userID, tt.courseID)

			assert.Nil(t, enrollment)
			assert.ErrorIs(t, err, tt.wantErr)
			enrollments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

// Two users racing for the last seat: the conditional seat decrement
// succeeds once, so exactly one enrollment is created.
func TestEnrollmentService_Enroll_LastSeat(t *testing.T) {
	svc, users, courses, enrollments := newEnrollmentFixture()

	users.On("GetByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	courses.On("GetByID", mock.Anything, int64(5)).Return(&models.Course{ID: 5, Name: "Math", AvailableSeats: 1}, nil)
	enrollments.On("ExistsByUserAndCourse", mock.Anything, mock.Anything, int64(5)).Return(false, nil)
	courses.On("TakeSeat", mock.Anything, int64(5)).Return(true, nil).Once()
	courses.On("TakeSeat", mock.Anything, int64(5)).Return(false, nil).Once()
	users.On("UpdateCourses", mock.Anything, int64(1), "Math").Return(nil)
	enrollments.On("Create", mock.Anything, mock.AnythingOfType("*models.Enrollment")).Return(nil)

	_, err := svc.Enroll(context.Background(), 1, 5)
	assert.NoError(t, err)

	_, err = svc.Enroll(context.Background(), 2, 5)
	assert.ErrorIs(t, err, apperrors.ErrNoSeatsAvailable)

	enrollments.AssertNumberOfCalls(t, "Create", 1)
}

func TestEnrollmentService_UpdateByIDs_NoChanges(t *testing.T) {
	svc, _, _, enrollments := newEnrollmentFixture()

	enrollment, err := svc.UpdateByIDs(context.Background(), 1, nil, nil)

	assert.Nil(t, enrollment)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	enrollments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestEnrollmentService_UpdateByIDs_SameIDs(t *testing.T) {
	svc, _, _, enrollments := newEnrollmentFixture()

	enrollments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Enrollment{ID: 3, UserID: 1, CourseID: 2}, nil)

	userID, courseID := int64(1), int64(2)
	enrollment, err := svc.UpdateByIDs(context.Background(), 3, &userID, &courseID)

	assert.Nil(t, enrollment)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	enrollments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEnrollmentService_UpdateByIDs_CourseChange(t *testing.T) {
	svc, users, courses, enrollments := newEnrollmentFixture()

	user := &models.User{ID: 1, Courses: "Math, Physics"}
	oldCourse := &models.Course{ID: 2, Name: "Math", AvailableSeats: 0}
	newCourse := &models.Course{ID: 4, Name: "Chemistry", AvailableSeats: 3}

	enrollments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Enrollment{ID: 3, UserID: 1, CourseID: 2}, nil)
	courses.On("GetByID", mock.Anything, int64(4)).Return(newCourse, nil)
	enrollments.On("ExistsByUserAndCourse", mock.Anything, int64(1), int64(4)).Return(false, nil)
	courses.On("TakeSeat", mock.Anything, int64(4)).Return(true, nil)
	courses.On("ReleaseSeat", mock.Anything, int64(2)).Return(nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(user, nil)
	courses.On("GetByID", mock.Anything, int64(2)).Return(oldCourse, nil)
	users.On("UpdateCourses", mock.Anything, int64(1), "Physics, Chemistry").Return(nil)
	enrollments.On("Update", mock.Anything, mock.AnythingOfType("*models.Enrollment")).Return(nil)

	courseID := int64(4)
	enrollment, err := svc.UpdateByIDs(context.Background(), 3, nil, &courseID)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), enrollment.UserID)
	assert.Equal(t, int64(4), enrollment.CourseID)
	assert.Equal(t, "Chemistry", enrollment.Course.Name)
	assert.Equal(t, 2, enrollment.Course.AvailableSeats)
	users.AssertExpectations(t)
	courses.AssertExpectations(t)
	enrollments.AssertExpectations(t)
}

func TestEnrollmentService_UpdateByIDs_UserChange(t *testing.T) {
	svc, users, courses, enrollments := newEnrollmentFixture()

	oldUser := &models.User{ID: 1, Courses: "Math, Physics"}
	newUser := &models.User{ID: 6, Courses: "Biology"}
	course := &models.Course{ID: 2, Name: "Math", AvailableSeats: 0}

	enrollments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Enrollment{ID: 3, UserID: 1, CourseID: 2}, nil)
	users.On("GetByID", mock.Anything, int64(6)).Return(newUser, nil)
	enrollments.On("ExistsByUserAndCourse", mock.Anything, int64(6), int64(2)).Return(false, nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(oldUser, nil)
	courses.On("GetByID", mock.Anything, int64(2)).Return(course, nil)
	users.On("UpdateCourses", mock.Anything, int64(1), "Physics").Return(nil)
	users.On("UpdateCourses", mock.Anything, int64(6), "Biology, Math").Return(nil)
	enrollments.On("Update", mock.Anything, mock.AnythingOfType("*models.Enrollment")).Return(nil)

	userID := int64(6)
	enrollment, err := svc.UpdateByIDs(context.Background(), 3, &userID, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(6), enrollment.UserID)
	assert.Equal(t, int64(2), enrollment.CourseID)
	// Seats do not move when only the user changes
	courses.AssertNotCalled(t, "TakeSeat", mock.Anything, mock.Anything)
	courses.AssertNotCalled(t, "ReleaseSeat", mock.Anything, mock.Anything)
	users.AssertExpectations(t)
	enrollments.AssertExpectations(t)
}

func TestEnrollmentService_UpdateByIDs_TargetConflict(t *testing.T) {
	svc, users, _, enrollments := newEnrollmentFixture()

	enrollments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Enrollment{ID: 3, UserID: 1, CourseID: 2}, nil)
	users.On("GetByID", mock.Anything, int64(6)).Return(&models.User{ID: 6}, nil)
	enrollments.On("ExistsByUserAndCourse", mock.Anything, int64(6), int64(2)).Return(true, nil)

	userID := int64(6)
	enrollment, err := svc.UpdateByIDs(context.Background(), 3, &userID, nil)

	assert.Nil(t, enrollment)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	enrollments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEnrollmentService_Remove(t *testing.T) {
	svc, users, courses, enrollments := newEnrollmentFixture()

	user := &models.User{ID: 1, Courses: "Math, Physics"}
	course := &models.Course{ID: 2, Name: "Math", AvailableSeats: 0}

	enrollments.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Enrollment{ID: 3, UserID: 1, CourseID: 2}, nil)
	courses.On("GetByID", mock.Anything, int64(2)).Return(course, nil)
	courses.On("ReleaseSeat", mock.Anything, int64(2)).Return(nil)
	users.On("GetByID", mock.Anything, int64(1)).Return(user, nil)
	users.On("UpdateCourses", mock.Anything, int64(1), "Physics").Return(nil)
	enrollments.On("Delete", mock.Anything, int64(3)).Return(nil)

	err := svc.Remove(context.Background(), 3)

	assert.NoError(t, err)
	users.AssertExpectations(t)
	courses.AssertExpectations(t)
	enrollments.AssertExpectations(t)
}

func TestEnrollmentService_Remove_NotFound(t *testing.T) {
	svc, _, courses, enrollments := newEnrollmentFixture()

	enrollments.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrEnrollmentNotFound)

	err := svc.Remove(context.Background(), 99)

	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
	courses.AssertNotCalled(t, "ReleaseSeat", mock.Anything, mock.Anything)
	enrollments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestEnrollmentService_ListByUser(t *testing.T) {
	svc, users, _, enrollments := newEnrollmentFixture()

	users.On("GetByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
	enrollments.On("GetAllByUser", mock.Anything, int64(1)).Return([]*models.Enrollment{}, nil)

	result, err := svc.ListByUser(context.Background(), 1)

	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestEnrollmentService_ListByUser_UserNotFound(t *testing.T) {
	svc, users, _, enrollments := newEnrollmentFixture()

	users.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrUserNotFound)

	result, err := svc.ListByUser(context.Background(), 99)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	enrollments.AssertNotCalled(t, "GetAllByUser", mock.Anything, mock.Anything)
}
