package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/edutech-cl/platform/internal/app/models"
)

type UserStoreMock struct{ mock.Mock }

func (m *UserStoreMock) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *UserStoreMock) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UserStoreMock) GetByRun(ctx context.Context, run string) (*models.User, error) {
	args := m.Called(ctx, run)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UserStoreMock) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UserStoreMock) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *UserStoreMock) GetByRole(ctx context.Context, role string) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *UserStoreMock) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *UserStoreMock) UpdateCourses(ctx context.Context, userID int64, courses string) error {
	return m.Called(ctx, userID, courses).Error(0)
}
func (m *UserStoreMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type CourseStoreMock struct{ mock.Mock }

func (m *CourseStoreMock) Create(ctx context.Context, course *models.Course) error {
	return m.Called(ctx, course).Error(0)
}
func (m *CourseStoreMock) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}
func (m *CourseStoreMock) GetAll(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}
func (m *CourseStoreMock) Update(ctx context.Context, course *models.Course) error {
	return m.Called(ctx, course).Error(0)
}
func (m *CourseStoreMock) TakeSeat(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *CourseStoreMock) ReleaseSeat(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *CourseStoreMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type EnrollmentStoreMock struct{ mock.Mock }

func (m *EnrollmentStoreMock) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return m.Called(ctx, enrollment).Error(0)
}
func (m *EnrollmentStoreMock) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}
func (m *EnrollmentStoreMock) GetAll(ctx context.Context) ([]*models.Enrollment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Enrollment), args.Error(1)
}
func (m *EnrollmentStoreMock) GetAllByUser(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Enrollment), args.Error(1)
}
func (m *EnrollmentStoreMock) GetAllByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Enrollment), args.Error(1)
}
func (m *EnrollmentStoreMock) ExistsByUserAndCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}
func (m *EnrollmentStoreMock) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return m.Called(ctx, enrollment).Error(0)
}
func (m *EnrollmentStoreMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// txManagerStub runs the transactional function directly against the
// given mocks, with no real transaction underneath.
type txManagerStub struct {
	store Store
}

func newTxManagerStub(users *UserStoreMock, courses *CourseStoreMock, enrollments *EnrollmentStoreMock) *txManagerStub {
	return &txManagerStub{store: Store{
		Users:       users,
		Courses:     courses,
		Enrollments: enrollments,
	}}
}

func (t *txManagerStub) WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	return fn(ctx, t.store)
}

func newNoopLogger() zerolog.Logger {
	return zerolog.Nop()
}
