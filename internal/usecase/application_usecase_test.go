package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	tx      *passthroughTx
	apps    *MockApplicationRepo
	history *MockHistoryRepo
	vacancy *MockVacancyRepo
	usecase domain.ApplicationUsecase
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		tx:      &passthroughTx{},
		apps:    new(MockApplicationRepo),
		history: new(MockHistoryRepo),
		vacancy: new(MockVacancyRepo),
	}
	f.usecase = usecase.NewApplicationUsecase(f.tx, f.apps, f.history, f.vacancy, validation.New())
	return f
}

func TestCreateApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require an actor", func(t *testing.T) {
		f := newApplicationFixture()
		_, err := f.usecase.CreateApplication(ctx, nil, domain.CreateApplicationInput{VacancyID: 1})
		assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
	})

	t.Run("Should report a missing vacancy", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancy.On("GetByIDForShare", mock.Anything, int64(9)).Return(nil, domain.ErrNotFound)

		_, err := f.usecase.CreateApplication(ctx, employee(), domain.CreateApplicationInput{VacancyID: 9})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("Should refuse a closed vacancy for any actor", func(t *testing.T) {
		closed := openVacancy()
		closed.State = domain.VacancyClosed

		for _, actor := range []*domain.Principal{employee(), employer()} {
			f := newApplicationFixture()
			f.vacancy.On("GetByIDForShare", mock.Anything, int64(1)).Return(closed, nil)

			_, err := f.usecase.CreateApplication(ctx, actor, domain.CreateApplicationInput{VacancyID: 1})
			assert.True(t, apperror.IsKind(err, apperror.KindState), "actor %s", actor.UserID)
		}
	})

	t.Run("Should refuse actors without an employee profile", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancy.On("GetByIDForShare", mock.Anything, int64(1)).Return(openVacancy(), nil)

		_, err := f.usecase.CreateApplication(ctx, otherEmployer(), domain.CreateApplicationInput{VacancyID: 1})
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})

	t.Run("Should refuse applying to an own vacancy", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancy.On("GetByIDForShare", mock.Anything, int64(1)).Return(openVacancy(), nil)

		both := employer()
		both.Employee = &domain.EmployeeCapability{ProfileID: 30}
		_, err := f.usecase.CreateApplication(ctx, both, domain.CreateApplicationInput{VacancyID: 1})
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
		f.apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should collect every field error", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancy.On("GetByIDForShare", mock.Anything, int64(1)).Return(openVacancy(), nil)

		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		_, err := f.usecase.CreateApplication(ctx, employee(), domain.CreateApplicationInput{
			VacancyID:         1,
			CoverLetter:       strings.Repeat("a", 1001),
			SalaryExpectation: ptr(-1.0),
			AvailabilityDate:  &yesterday,
		})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Fields, "cover_letter")
		assert.Contains(t, appErr.Fields, "salary_expectation")
		assert.Contains(t, appErr.Fields, "availability_date")
	})

	t.Run("Should cap the salary expectation", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancy.On("GetByIDForShare", mock.Anything, int64(1)).Return(openVacancy(), nil)

		_, err := f.usecase.CreateApplication(ctx, employee(), domain.CreateApplicationInput{
			VacancyID:         1,
			SalaryExpectation: ptr(1_000_000.01),
		})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "salary_expectation")
	})

	t.Run("Should map a duplicate to a conflict", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancy.On("GetByIDForShare", mock.Anything, int64(1)).Return(openVacancy(), nil)
		f.apps.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := f.usecase.CreateApplication(ctx, employee(), domain.CreateApplicationInput{VacancyID: 1})
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	})

	t.Run("Should create a pending application", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancy.On("GetByIDForShare", mock.Anything, int64(1)).Return(openVacancy(), nil)
		f.apps.On("Create", mock.Anything, mock.AnythingOfType("*domain.JobApplication")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.JobApplication).ID = 55
		})

		today := time.Now().UTC()
		app, err := f.usecase.CreateApplication(ctx, employee(), domain.CreateApplicationInput{
			VacancyID:         1,
			CoverLetter:       "I would love to join",
			SalaryExpectation: ptr(5000.0),
			AvailabilityDate:  &today,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(55), app.ID)
		assert.Equal(t, domain.StatusPending, app.Status)
		assert.Equal(t, int64(20), app.EmployeeID)
		assert.False(t, app.AppliedAt.IsZero())
		assert.Equal(t, app.AppliedAt, app.UpdatedAt)
		assert.Equal(t, 1, f.tx.calls)
	})
}

func TestTransitionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unknown statuses", func(t *testing.T) {
		f := newApplicationFixture()
		_, err := f.usecase.TransitionStatus(ctx, employer(), 100, "hired", "")

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Fields, "status")
	})

	t.Run("Should reject long reasons", func(t *testing.T) {
		f := newApplicationFixture()
		_, err := f.usecase.TransitionStatus(ctx, employer(), 100, domain.StatusReviewing, strings.Repeat("r", 501))

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "reason")
	})

	t.Run("Should report a missing application", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(nil, domain.ErrNotFound)

		_, err := f.usecase.TransitionStatus(ctx, employer(), 100, domain.StatusReviewing, "")
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("Should forbid strangers", func(t *testing.T) {
		for _, actor := range []*domain.Principal{otherEmployer(), otherEmployee()} {
			f := newApplicationFixture()
			f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)

			_, err := f.usecase.TransitionStatus(ctx, actor, 100, domain.StatusReviewing, "")
			assert.True(t, apperror.IsKind(err, apperror.KindForbidden), "actor %s", actor.UserID)
		}
	})

	t.Run("Should keep terminal statuses final", func(t *testing.T) {
		for _, status := range []domain.ApplicationStatus{domain.StatusAccepted, domain.StatusRejected, domain.StatusWithdrawn} {
			f := newApplicationFixture()
			f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(status), nil)

			_, err := f.usecase.TransitionStatus(ctx, employer(), 100, domain.StatusReviewing, "")
			assert.True(t, apperror.IsKind(err, apperror.KindState), "from %s", status)
		}
	})

	t.Run("Should only let the applicant withdraw", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)

		_, err := f.usecase.TransitionStatus(ctx, employee(), 100, domain.StatusReviewing, "")
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})

	t.Run("Should refuse withdrawal after the interview", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusInterviewCompleted), nil)

		_, err := f.usecase.TransitionStatus(ctx, employee(), 100, domain.StatusWithdrawn, "")
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})

	t.Run("Should record the applicant's withdrawal", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusReviewing), nil)
		f.apps.On("UpdateStatus", mock.Anything, int64(100), domain.StatusWithdrawn, mock.Anything).Return(nil)
		f.history.On("Append", mock.Anything, mock.AnythingOfType("*domain.ApplicationStatusHistory")).Return(nil).Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.ApplicationStatusHistory)
			assert.Equal(t, domain.StatusReviewing, entry.PreviousStatus)
			assert.Equal(t, domain.StatusWithdrawn, entry.NewStatus)
			assert.Equal(t, "employee-user", entry.ChangedBy)
			assert.Equal(t, "found another role", entry.Reason)
		})

		app, err := f.usecase.TransitionStatus(ctx, employee(), 100, domain.StatusWithdrawn, "found another role")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusWithdrawn, app.Status)
		assert.Nil(t, app.Notes, "applicants never see employer notes")
		f.history.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("Should treat the current status as a no-op", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusWithdrawn), nil)

		app, err := f.usecase.TransitionStatus(ctx, employee(), 100, domain.StatusWithdrawn, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusWithdrawn, app.Status)
		f.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Should let the employer pick any status", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)
		f.apps.On("UpdateStatus", mock.Anything, int64(100), domain.StatusAccepted, mock.Anything).Return(nil)
		f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

		app, err := f.usecase.TransitionStatus(ctx, employer(), 100, domain.StatusAccepted, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, app.Status)
		require.NotNil(t, app.Notes)
	})

	t.Run("Should keep admins read only", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)

		_, err := f.usecase.TransitionStatus(ctx, admin(), 100, domain.StatusReviewing, "")
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})

	t.Run("Should surface history failures as internal", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)
		f.apps.On("UpdateStatus", mock.Anything, int64(100), domain.StatusReviewing, mock.Anything).Return(nil)
		f.history.On("Append", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := f.usecase.TransitionStatus(ctx, employer(), 100, domain.StatusReviewing, "")
		assert.True(t, apperror.IsKind(err, apperror.KindInternal))
	})
}

func TestUpdateApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("Should need at least one field", func(t *testing.T) {
		f := newApplicationFixture()
		_, err := f.usecase.UpdateApplication(ctx, employer(), 100, domain.UpdateApplicationInput{})
		assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	})

	t.Run("Should apply notes and status in one transaction", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)
		f.apps.On("UpdateNotes", mock.Anything, int64(100), mock.Anything, mock.Anything).Return(nil)
		f.apps.On("UpdateStatus", mock.Anything, int64(100), domain.StatusReviewing, mock.Anything).Return(nil)
		f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

		status := domain.StatusReviewing
		app, err := f.usecase.UpdateApplication(ctx, employer(), 100, domain.UpdateApplicationInput{
			Status: &status,
			Notes:  ptr("call back next week"),
			Reason: "screening",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusReviewing, app.Status)
		assert.Equal(t, 1, f.tx.calls)
	})

	t.Run("Should forbid applicants from editing notes", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByIDForUpdate", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)

		_, err := f.usecase.UpdateApplication(ctx, employee(), 100, domain.UpdateApplicationInput{Notes: ptr("hi")})
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
		f.apps.AssertNotCalled(t, "UpdateNotes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should limit notes length", func(t *testing.T) {
		f := newApplicationFixture()
		_, err := f.usecase.UpdateApplication(ctx, employer(), 100, domain.UpdateApplicationInput{Notes: ptr(strings.Repeat("n", 5001))})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestApplicationReads(t *testing.T) {
	ctx := context.Background()

	t.Run("Should redact notes for the applicant", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByID", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)

		app, err := f.usecase.GetApplication(ctx, employee(), 100)
		require.NoError(t, err)
		assert.Nil(t, app.Notes)
	})

	t.Run("Should show notes to admins", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByID", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)

		app, err := f.usecase.GetApplication(ctx, admin(), 100)
		require.NoError(t, err)
		assert.NotNil(t, app.Notes)
	})

	t.Run("Should forbid reading someone else's application", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByID", mock.Anything, int64(100)).Return(applicationWith(domain.StatusPending), nil)

		_, err := f.usecase.GetApplication(ctx, otherEmployee(), 100)
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})

	t.Run("Should default the listing scope by capability", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("ListByEmployee", mock.Anything, int64(20)).Return([]domain.JobApplication{*applicationWith(domain.StatusPending)}, nil)
		f.apps.On("ListByEmployer", mock.Anything, int64(10)).Return([]domain.JobApplication{*applicationWith(domain.StatusPending)}, nil)

		mine, err := f.usecase.ListApplications(ctx, employee(), domain.ScopeDefault)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Nil(t, mine[0].Notes)

		received, err := f.usecase.ListApplications(ctx, employer(), domain.ScopeDefault)
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.NotNil(t, received[0].Notes)

		_, err = f.usecase.ListApplications(ctx, employee(), domain.ScopeEmployer)
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

		_, err = f.usecase.ListApplications(ctx, admin(), domain.ScopeDefault)
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})

	t.Run("Should only list a vacancy's applications for its owner", func(t *testing.T) {
		f := newApplicationFixture()
		f.vacancy.On("GetByID", mock.Anything, int64(1)).Return(openVacancy(), nil)
		f.apps.On("ListByVacancy", mock.Anything, int64(1)).Return([]domain.JobApplication{}, nil)

		_, err := f.usecase.ListVacancyApplications(ctx, employer(), 1)
		assert.NoError(t, err)

		_, err = f.usecase.ListVacancyApplications(ctx, otherEmployer(), 1)
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})

	t.Run("Should gate the history like the application", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByID", mock.Anything, int64(100)).Return(applicationWith(domain.StatusReviewing), nil)
		f.history.On("ListByApplication", mock.Anything, int64(100)).Return([]domain.ApplicationStatusHistory{
			{ApplicationID: 100, PreviousStatus: domain.StatusPending, NewStatus: domain.StatusReviewing},
		}, nil)

		entries, err := f.usecase.GetStatusHistory(ctx, employee(), 100)
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		_, err = f.usecase.GetStatusHistory(ctx, otherEmployer(), 100)
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})
}
