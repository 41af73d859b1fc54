package usecase

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/policy"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/metrics"
	"job-board-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	tx          domain.Transactor
	appRepo     domain.ApplicationRepository
	historyRepo domain.StatusHistoryRepository
	vacancyRepo domain.VacancyRepository
	validate    *validator.Validate
}

// NewApplicationUsecase creates the application lifecycle engine
func NewApplicationUsecase(
	tx domain.Transactor,
	appRepo domain.ApplicationRepository,
	historyRepo domain.StatusHistoryRepository,
	vacancyRepo domain.VacancyRepository,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		tx:          tx,
		appRepo:     appRepo,
		historyRepo: historyRepo,
		vacancyRepo: vacancyRepo,
		validate:    validate,
	}
}

// CreateApplication submits actor's application to an open vacancy.
func (uc *applicationUsecase) CreateApplication(ctx context.Context, actor *domain.Principal, in domain.CreateApplicationInput) (*domain.JobApplication, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	var app *domain.JobApplication
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. Vacancy must exist and stay open until commit
		vacancy, err := uc.vacancyRepo.GetByIDForShare(ctx, in.VacancyID)
		if err != nil {
			return lookupErr(err, "Vacancy not found")
		}
		if !vacancy.IsOpen() {
			return apperror.State("Vacancy is closed and no longer accepts applications")
		}

		// 2. Only employees apply, never to their own vacancy
		employeeID, ok := actor.EmployeeProfileID()
		if !ok {
			return apperror.Forbidden("Only employees can apply to vacancies")
		}
		if policy.IsSelfApplication(actor, vacancy) {
			return apperror.Forbidden("You cannot apply to your own vacancy")
		}

		// 3. Payload
		if err := uc.validateCreate(in); err != nil {
			return err
		}

		now := clock()
		app = &domain.JobApplication{
			EmployeeID:        employeeID,
			VacancyID:         vacancy.ID,
			Status:            domain.StatusPending,
			CoverLetter:       in.CoverLetter,
			SalaryExpectation: in.SalaryExpectation,
			AvailabilityDate:  in.AvailabilityDate,
			AppliedAt:         now,
			UpdatedAt:         now,
			VacancyEmployerID: vacancy.EmployerID,
			VacancyTitle:      vacancy.Title,
		}

		// 4. The unique constraint decides concurrent duplicates
		if err := uc.appRepo.Create(ctx, app); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return apperror.Conflict("You have already applied to this vacancy")
			}
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, appErr(err)
	}

	metrics.RecordApplicationCreated()
	logger.Log.Info("application submitted",
		"application_id", app.ID, "vacancy_id", app.VacancyID, "employee_id", app.EmployeeID)
	return app, nil
}

func (uc *applicationUsecase) validateCreate(in domain.CreateApplicationInput) error {
	fields := validation.FieldErrors{}
	fields.Merge(uc.validate.Struct(in))

	if s := in.SalaryExpectation; s != nil {
		switch {
		case *s < 0:
			fields.Add("salary_expectation", "cannot be negative")
		case *s > domain.MaxSalaryExpectation:
			fields.Add("salary_expectation", "cannot exceed 1000000")
		}
	}
	return fields.Err()
}

// TransitionStatus moves the application to status and records exactly one history
// row. Setting the current status again is a no-op.
func (uc *applicationUsecase) TransitionStatus(ctx context.Context, actor *domain.Principal, applicationID int64, status domain.ApplicationStatus, reason string) (*domain.JobApplication, error) {
	var app *domain.JobApplication
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		app, err = uc.transition(ctx, actor, applicationID, status, reason)
		return err
	})
	if err != nil {
		return nil, appErr(err)
	}
	redactNotes(actor, app)
	return app, nil
}

// transition must run inside a transaction.
func (uc *applicationUsecase) transition(ctx context.Context, actor *domain.Principal, applicationID int64, status domain.ApplicationStatus, reason string) (*domain.JobApplication, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	fields := validation.FieldErrors{}
	if !status.IsValid() {
		fields.Add("status", "must be one of: pending, reviewing, interview_scheduled, interview_completed, rejected, accepted, withdrawn")
	}
	if utf8.RuneCountInString(reason) > domain.MaxStatusReasonLength {
		fields.Add("reason", fmt.Sprintf("cannot exceed %d characters", domain.MaxStatusReasonLength))
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	app, err := uc.appRepo.GetByIDForUpdate(ctx, applicationID)
	if err != nil {
		return nil, lookupErr(err, "Application not found")
	}
	if !policy.CanReadApplication(actor, app) {
		return nil, apperror.Forbidden("You do not have access to this application")
	}

	previous := app.Status
	if status != previous && previous.IsTerminal() {
		return nil, apperror.State(fmt.Sprintf("Application is %s and can no longer change status", previous))
	}
	if !policy.CanWriteApplication(actor, app, policy.SetStatus(status)) {
		return nil, apperror.Forbidden("You are not allowed to set this status")
	}
	if status == previous {
		return app, nil
	}

	now := clock()
	if err := uc.appRepo.UpdateStatus(ctx, app.ID, status, now); err != nil {
		return nil, lookupErr(err, "Application not found")
	}
	entry := &domain.ApplicationStatusHistory{
		ApplicationID:  app.ID,
		PreviousStatus: previous,
		NewStatus:      status,
		ChangedBy:      actor.UserID,
		Reason:         reason,
		ChangedAt:      now,
	}
	if err := uc.historyRepo.Append(ctx, entry); err != nil {
		return nil, apperror.Internal(err)
	}

	app.Status = status
	app.UpdatedAt = now

	metrics.RecordStatusTransition(string(previous), string(status))
	logger.Log.Info("application status changed",
		"application_id", app.ID, "from", previous, "to", status, "changed_by", actor.UserID)
	return app, nil
}

// UpdateNotes replaces the employer-internal notes. It never writes history.
func (uc *applicationUsecase) UpdateNotes(ctx context.Context, actor *domain.Principal, applicationID int64, notes *string) (*domain.JobApplication, error) {
	var app *domain.JobApplication
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		app, err = uc.updateNotes(ctx, actor, applicationID, notes)
		return err
	})
	if err != nil {
		return nil, appErr(err)
	}
	return app, nil
}

func (uc *applicationUsecase) updateNotes(ctx context.Context, actor *domain.Principal, applicationID int64, notes *string) (*domain.JobApplication, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	if notes != nil && utf8.RuneCountInString(*notes) > domain.MaxNotesLength {
		return nil, apperror.Validation(map[string]string{
			"notes": fmt.Sprintf("cannot exceed %d characters", domain.MaxNotesLength),
		})
	}

	app, err := uc.appRepo.GetByIDForUpdate(ctx, applicationID)
	if err != nil {
		return nil, lookupErr(err, "Application not found")
	}
	if !policy.CanReadApplication(actor, app) {
		return nil, apperror.Forbidden("You do not have access to this application")
	}
	if !policy.CanWriteApplication(actor, app, policy.EditNotes) {
		return nil, apperror.Forbidden("Only the employer can edit notes")
	}

	now := clock()
	if err := uc.appRepo.UpdateNotes(ctx, app.ID, notes, now); err != nil {
		return nil, lookupErr(err, "Application not found")
	}
	app.Notes = notes
	app.UpdatedAt = now
	return app, nil
}

// UpdateApplication applies a notes change and a status change atomically.
func (uc *applicationUsecase) UpdateApplication(ctx context.Context, actor *domain.Principal, applicationID int64, in domain.UpdateApplicationInput) (*domain.JobApplication, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	if in.Status == nil && in.Notes == nil {
		return nil, apperror.BadRequest("Nothing to update: provide status or notes")
	}

	fields := validation.FieldErrors{}
	fields.Merge(uc.validate.Struct(in))
	if err := fields.Err(); err != nil {
		return nil, err
	}

	var app *domain.JobApplication
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if in.Notes != nil {
			if app, err = uc.updateNotes(ctx, actor, applicationID, in.Notes); err != nil {
				return err
			}
		}
		if in.Status != nil {
			if app, err = uc.transition(ctx, actor, applicationID, *in.Status, in.Reason); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, appErr(err)
	}
	redactNotes(actor, app)
	return app, nil
}

func (uc *applicationUsecase) GetApplication(ctx context.Context, actor *domain.Principal, applicationID int64) (*domain.JobApplication, error) {
	app, err := uc.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, lookupErr(err, "Application not found")
	}
	if !policy.CanReadApplication(actor, app) {
		return nil, apperror.Forbidden("You do not have access to this application")
	}
	redactNotes(actor, app)
	return app, nil
}

// ListApplications lists one side of actor's relationships. With the default scope an
// actor holding an employee profile sees its own applications.
func (uc *applicationUsecase) ListApplications(ctx context.Context, actor *domain.Principal, scope domain.ApplicationScope) ([]domain.JobApplication, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	employeeID, isEmployee := actor.EmployeeProfileID()
	employerID, isEmployer := actor.EmployerProfileID()
	if scope == domain.ScopeDefault {
		scope = domain.ScopeEmployer
		if isEmployee {
			scope = domain.ScopeEmployee
		}
	}

	var (
		apps []domain.JobApplication
		err  error
	)
	switch scope {
	case domain.ScopeEmployee:
		if !isEmployee {
			return nil, apperror.Forbidden("An employee profile is required")
		}
		apps, err = uc.appRepo.ListByEmployee(ctx, employeeID)
	case domain.ScopeEmployer:
		if !isEmployer {
			return nil, apperror.Forbidden("An employer profile is required")
		}
		apps, err = uc.appRepo.ListByEmployer(ctx, employerID)
	default:
		return nil, apperror.Validation(map[string]string{"scope": "must be one of: employee, employer"})
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	for i := range apps {
		redactNotes(actor, &apps[i])
	}
	return apps, nil
}

func (uc *applicationUsecase) ListVacancyApplications(ctx context.Context, actor *domain.Principal, vacancyID int64) ([]domain.JobApplication, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	vacancy, err := uc.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, lookupErr(err, "Vacancy not found")
	}
	if !policy.CanWriteVacancy(actor, vacancy) {
		return nil, apperror.Forbidden("Only the vacancy owner can list its applications")
	}

	apps, err := uc.appRepo.ListByVacancy(ctx, vacancyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// GetStatusHistory returns the audit trail oldest first.
func (uc *applicationUsecase) GetStatusHistory(ctx context.Context, actor *domain.Principal, applicationID int64) ([]domain.ApplicationStatusHistory, error) {
	app, err := uc.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, lookupErr(err, "Application not found")
	}
	if !policy.CanReadApplication(actor, app) {
		return nil, apperror.Forbidden("You do not have access to this application")
	}

	entries, err := uc.historyRepo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}

func redactNotes(actor *domain.Principal, app *domain.JobApplication) {
	if app != nil && !policy.CanSeeNotes(actor, app) {
		app.Notes = nil
	}
}
