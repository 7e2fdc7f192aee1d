package service

import (
	"context"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockStatsSource struct {
	mock.Mock
}

func (m *mockStatsSource) GetLastCompletedActivity(ctx context.Context, studentID uint, gameID string) (*model.LastActivity, error) {
	args := m.Called(ctx, studentID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LastActivity), args.Error(1)
}

func (m *mockStatsSource) GetDistinctCompletedActivities(ctx context.Context, studentID uint, gameID string) (int64, error) {
	args := m.Called(ctx, studentID, gameID)
	return args.Get(0).(int64), args.Error(1)
}

type mockLevelSource struct {
	mock.Mock
}

func (m *mockLevelSource) GetTotalActivitiesCount(ctx context.Context, gameID string) (int64, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLevelSource) FindByGameID(ctx context.Context, gameID string) ([]model.GameLevel, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GameLevel), args.Error(1)
}

func intPtr(v int) *int { return &v }

type mockStatsStore struct {
	mockStatsSource
}

func (m *mockStatsStore) Create(ctx context.Context, stat *model.StudentStatistics) error {
	args := m.Called(ctx, stat)
	return args.Error(0)
}

func (m *mockStatsStore) UpdateMaxUnlockedLevel(ctx context.Context, id uint, level int) error {
	args := m.Called(ctx, id, level)
	return args.Error(0)
}

func (m *mockStatsStore) ListByStudent(ctx context.Context, studentID uint, gameID string) ([]model.StudentStatistics, error) {
	args := m.Called(ctx, studentID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StudentStatistics), args.Error(1)
}

func (m *mockStatsStore) GetTotalPoints(ctx context.Context, studentID uint, gameID string) (int, error) {
	args := m.Called(ctx, studentID, gameID)
	return args.Int(0), args.Error(1)
}

type mockGameCatalog struct {
	mock.Mock
}

func (m *mockGameCatalog) FindByID(ctx context.Context, id string) (*model.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *mockGameCatalog) List(ctx context.Context, enabledOnly bool) ([]model.Game, error) {
	args := m.Called(ctx, enabledOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Game), args.Error(1)
}

type mockSummaryCache struct {
	mock.Mock
}

func (m *mockSummaryCache) Get(ctx context.Context, studentID uint) (*model.AggregatedStudentStats, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AggregatedStudentStats), args.Error(1)
}

func (m *mockSummaryCache) Version(ctx context.Context, studentID uint) (int64, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSummaryCache) Set(ctx context.Context, studentID uint, version int64, stats *model.AggregatedStudentStats) error {
	args := m.Called(ctx, studentID, version, stats)
	return args.Error(0)
}

func (m *mockSummaryCache) Invalidate(ctx context.Context, studentID uint) error {
	args := m.Called(ctx, studentID)
	return args.Error(0)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByID(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) FindByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) CreateStudent(user *model.User, student *model.Student) error {
	args := m.Called(user, student)
	return args.Error(0)
}

func (m *mockUserStore) CreateAdmin(user *model.User, admin *model.Admin) error {
	args := m.Called(user, admin)
	return args.Error(0)
}

func (m *mockUserStore) UpdateLastLogin(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *mockUserStore) CountByRole(role model.UserRole) (int64, error) {
	args := m.Called(role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserStore) CreateTeacher(user *model.User, teacher *model.Teacher) error {
	args := m.Called(user, teacher)
	return args.Error(0)
}

func (m *mockUserStore) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserStore) SetDisabled(userID uint, disabled bool) error {
	args := m.Called(userID, disabled)
	return args.Error(0)
}

func (m *mockUserStore) Delete(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *mockUserStore) List(filter repository.UserFilter, page, limit int) ([]model.User, int64, error) {
	args := m.Called(filter, page, limit)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

type mockCourseStore struct {
	mock.Mock
}

func (m *mockCourseStore) Create(course *model.Course) error {
	args := m.Called(course)
	return args.Error(0)
}

func (m *mockCourseStore) Update(course *model.Course) error {
	args := m.Called(course)
	return args.Error(0)
}

func (m *mockCourseStore) Delete(course *model.Course) error {
	args := m.Called(course)
	return args.Error(0)
}

func (m *mockCourseStore) FindByID(id uint) (*model.Course, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *mockCourseStore) ListByTeacher(teacherID uint) ([]model.Course, error) {
	args := m.Called(teacherID)
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *mockCourseStore) List(page, limit int) ([]model.Course, int64, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]model.Course), args.Get(1).(int64), args.Error(2)
}

func (m *mockCourseStore) AddStudents(course *model.Course, students []model.Student) error {
	args := m.Called(course, students)
	return args.Error(0)
}

func (m *mockCourseStore) RemoveStudent(course *model.Course, student *model.Student) error {
	args := m.Called(course, student)
	return args.Error(0)
}

func (m *mockCourseStore) ListStudents(courseID uint) ([]model.Student, error) {
	args := m.Called(courseID)
	return args.Get(0).([]model.Student), args.Error(1)
}

type mockTeacherFinder struct {
	mock.Mock
}

func (m *mockTeacherFinder) FindByID(id uint) (*model.Teacher, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Teacher), args.Error(1)
}

func (m *mockTeacherFinder) FindByUserID(userID uint) (*model.Teacher, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Teacher), args.Error(1)
}

type mockStudentFinder struct {
	mock.Mock
}

func (m *mockStudentFinder) FindByID(id uint) (*model.Student, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}
