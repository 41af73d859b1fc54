package usecase_test

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// passthroughTx runs fn directly; mocks do not need a real transaction.
type passthroughTx struct {
	calls int
}

func (t *passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockApplicationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockApplicationRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

func (m *MockApplicationRepo) ListByEmployer(ctx context.Context, employerID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, employerID)
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

func (m *MockApplicationRepo) ListByVacancy(ctx context.Context, vacancyID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, vacancyID)
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

func (m *MockApplicationRepo) UpdateNotes(ctx context.Context, id int64, notes *string, at time.Time) error {
	return m.Called(ctx, id, notes, at).Error(0)
}

type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Append(ctx context.Context, entry *domain.ApplicationStatusHistory) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockHistoryRepo) ListByApplication(ctx context.Context, applicationID int64) ([]domain.ApplicationStatusHistory, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.ApplicationStatusHistory), args.Error(1)
}

type MockVacancyRepo struct {
	mock.Mock
}

func (m *MockVacancyRepo) Create(ctx context.Context, v *domain.Vacancy) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVacancyRepo) GetByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) GetByIDForShare(ctx context.Context, id int64) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) Update(ctx context.Context, v *domain.Vacancy) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVacancyRepo) UpdateState(ctx context.Context, id int64, state domain.VacancyState, at time.Time) error {
	return m.Called(ctx, id, state, at).Error(0)
}

type MockTechnologyRepo struct {
	mock.Mock
}

func (m *MockTechnologyRepo) GetOrCreate(ctx context.Context, name string) (*domain.Technology, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Technology), args.Error(1)
}

func (m *MockTechnologyRepo) Attach(ctx context.Context, vacancyID, technologyID int64) error {
	return m.Called(ctx, vacancyID, technologyID).Error(0)
}

func (m *MockTechnologyRepo) ClearVacancy(ctx context.Context, vacancyID int64) error {
	return m.Called(ctx, vacancyID).Error(0)
}

func (m *MockTechnologyRepo) ListByVacancy(ctx context.Context, vacancyID int64) ([]domain.Technology, error) {
	args := m.Called(ctx, vacancyID)
	return args.Get(0).([]domain.Technology), args.Error(1)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) ListByApplication(ctx context.Context, applicationID int64) ([]domain.Interview, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

type MockPrincipalRepo struct {
	mock.Mock
}

func (m *MockPrincipalRepo) GetByUserID(ctx context.Context, userID string) (*domain.Principal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

// Principals shared by the tests. The employer owns profile 10; vacancies in fixtures
// belong to it unless stated otherwise.
func employer() *domain.Principal {
	return &domain.Principal{
		UserID:   "employer-user",
		Role:     domain.RoleEmployer,
		Employer: &domain.EmployerCapability{ProfileID: 10, CompanyName: "Acme"},
	}
}

func otherEmployer() *domain.Principal {
	return &domain.Principal{
		UserID:   "other-employer-user",
		Role:     domain.RoleEmployer,
		Employer: &domain.EmployerCapability{ProfileID: 11},
	}
}

func employee() *domain.Principal {
	return &domain.Principal{
		UserID:   "employee-user",
		Role:     domain.RoleEmployee,
		Employee: &domain.EmployeeCapability{ProfileID: 20},
	}
}

func otherEmployee() *domain.Principal {
	return &domain.Principal{
		UserID:   "other-employee-user",
		Role:     domain.RoleEmployee,
		Employee: &domain.EmployeeCapability{ProfileID: 21},
	}
}

func admin() *domain.Principal {
	return &domain.Principal{UserID: "admin-user", Role: domain.RoleAdmin}
}

func openVacancy() *domain.Vacancy {
	return &domain.Vacancy{
		ID:             1,
		EmployerID:     10,
		EmployerUserID: "employer-user",
		Title:          "Backend Engineer",
		State:          domain.VacancyOpen,
	}
}

func applicationWith(status domain.ApplicationStatus) *domain.JobApplication {
	notes := "strong candidate"
	return &domain.JobApplication{
		ID:                100,
		EmployeeID:        20,
		VacancyID:         1,
		Status:            status,
		Notes:             &notes,
		VacancyEmployerID: 10,
	}
}

func ptr[T any](v T) *T { return &v }
