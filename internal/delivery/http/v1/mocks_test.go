package v1_test

import (
	"context"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

type tokenTable map[string]*domain.Principal

func (t tokenTable) Verify(token string) (*auth.Claims, error) {
	p, ok := t[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{Email: p.Email, RegisteredClaims: jwt.RegisteredClaims{Subject: p.UserID}}, nil
}

type identityTable map[string]*domain.Principal

func (t identityTable) ResolvePrincipal(ctx context.Context, userID, email string) (*domain.Principal, error) {
	for _, p := range t {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type MockApplicationUsecase struct {
	mock.Mock
}

func (m *MockApplicationUsecase) CreateApplication(ctx context.Context, actor *domain.Principal, in domain.CreateApplicationInput) (*domain.JobApplication, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockApplicationUsecase) TransitionStatus(ctx context.Context, actor *domain.Principal, applicationID int64, status domain.ApplicationStatus, reason string) (*domain.JobApplication, error) {
	args := m.Called(ctx, actor, applicationID, status, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockApplicationUsecase) UpdateNotes(ctx context.Context, actor *domain.Principal, applicationID int64, notes *string) (*domain.JobApplication, error) {
	args := m.Called(ctx, actor, applicationID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockApplicationUsecase) UpdateApplication(ctx context.Context, actor *domain.Principal, applicationID int64, in domain.UpdateApplicationInput) (*domain.JobApplication, error) {
	args := m.Called(ctx, actor, applicationID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockApplicationUsecase) GetApplication(ctx context.Context, actor *domain.Principal, applicationID int64) (*domain.JobApplication, error) {
	args := m.Called(ctx, actor, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockApplicationUsecase) ListApplications(ctx context.Context, actor *domain.Principal, scope domain.ApplicationScope) ([]domain.JobApplication, error) {
	args := m.Called(ctx, actor, scope)
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

func (m *MockApplicationUsecase) ListVacancyApplications(ctx context.Context, actor *domain.Principal, vacancyID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, actor, vacancyID)
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

func (m *MockApplicationUsecase) GetStatusHistory(ctx context.Context, actor *domain.Principal, applicationID int64) ([]domain.ApplicationStatusHistory, error) {
	args := m.Called(ctx, actor, applicationID)
	return args.Get(0).([]domain.ApplicationStatusHistory), args.Error(1)
}

type MockVacancyUsecase struct {
	mock.Mock
}

func (m *MockVacancyUsecase) CreateVacancy(ctx context.Context, actor *domain.Principal, in domain.CreateVacancyInput) (*domain.Vacancy, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyUsecase) UpdateVacancy(ctx context.Context, actor *domain.Principal, id int64, in domain.UpdateVacancyInput) (*domain.Vacancy, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyUsecase) CloseVacancy(ctx context.Context, actor *domain.Principal, id int64) (*domain.Vacancy, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyUsecase) ReopenVacancy(ctx context.Context, actor *domain.Principal, id int64) (*domain.Vacancy, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyUsecase) GetVacancy(ctx context.Context, id int64) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyUsecase) AttachTechnologies(ctx context.Context, vacancyID int64, names []string) ([]domain.Technology, error) {
	args := m.Called(ctx, vacancyID, names)
	return args.Get(0).([]domain.Technology), args.Error(1)
}

func (m *MockVacancyUsecase) ReplaceTechnologies(ctx context.Context, vacancyID int64, names []string) ([]domain.Technology, error) {
	args := m.Called(ctx, vacancyID, names)
	return args.Get(0).([]domain.Technology), args.Error(1)
}

type MockInterviewUsecase struct {
	mock.Mock
}

func (m *MockInterviewUsecase) ScheduleInterview(ctx context.Context, actor *domain.Principal, applicationID int64, in domain.ScheduleInterviewInput) (*domain.Interview, error) {
	args := m.Called(ctx, actor, applicationID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewUsecase) UpdateInterview(ctx context.Context, actor *domain.Principal, interviewID int64, in domain.UpdateInterviewInput) (*domain.Interview, error) {
	args := m.Called(ctx, actor, interviewID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewUsecase) ListInterviews(ctx context.Context, actor *domain.Principal, applicationID int64) ([]domain.Interview, error) {
	args := m.Called(ctx, actor, applicationID)
	return args.Get(0).([]domain.Interview), args.Error(1)
}

type stubHealth struct {
	status map[string]string
	ok     bool
}

func (s stubHealth) Check(ctx context.Context) (map[string]string, bool) {
	return s.status, s.ok
}
