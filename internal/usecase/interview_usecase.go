package usecase

import (
	"context"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/policy"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/metrics"
	"job-board-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	tx            domain.Transactor
	appRepo       domain.ApplicationRepository
	interviewRepo domain.InterviewRepository
	validate      *validator.Validate
}

func NewInterviewUsecase(
	tx domain.Transactor,
	appRepo domain.ApplicationRepository,
	interviewRepo domain.InterviewRepository,
	validate *validator.Validate,
) domain.InterviewUsecase {
	return &interviewUsecase{
		tx:            tx,
		appRepo:       appRepo,
		interviewRepo: interviewRepo,
		validate:      validate,
	}
}

// ScheduleInterview books an interview on an active application. The application
// status is left as is.
func (uc *interviewUsecase) ScheduleInterview(ctx context.Context, actor *domain.Principal, applicationID int64, in domain.ScheduleInterviewInput) (*domain.Interview, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	var iv *domain.Interview
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		app, err := uc.appRepo.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return lookupErr(err, "Application not found")
		}
		if !policy.CanWriteApplication(actor, app, policy.ScheduleInterview) {
			return apperror.Forbidden("Only the vacancy owner can schedule interviews")
		}

		fields := validation.FieldErrors{}
		fields.Merge(uc.validate.Struct(in))
		checkScore(fields, in.Score)
		if err := fields.Err(); err != nil {
			return err
		}

		if !app.IsActive() {
			return apperror.State("Interviews cannot be scheduled for a closed application")
		}

		now := clock()
		iv = &domain.Interview{
			ApplicationID:   app.ID,
			Type:            in.Type,
			ScheduledAt:     in.ScheduledAt.UTC(),
			DurationMinutes: in.DurationMinutes,
			Location:        in.Location,
			InterviewerID:   actor.UserID,
			Status:          domain.InterviewScheduled,
			Score:           in.Score,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.interviewRepo.Create(ctx, iv); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, appErr(err)
	}

	metrics.RecordInterviewScheduled(string(iv.Type))
	logger.Log.Info("interview scheduled",
		"interview_id", iv.ID, "application_id", iv.ApplicationID, "scheduled_at", iv.ScheduledAt)
	return iv, nil
}

// UpdateInterview edits an interview. Cancelled interviews are final and completed ones
// only take feedback and score. Moving the date marks the interview rescheduled.
func (uc *interviewUsecase) UpdateInterview(ctx context.Context, actor *domain.Principal, interviewID int64, in domain.UpdateInterviewInput) (*domain.Interview, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	var iv *domain.Interview
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		iv, err = uc.interviewRepo.GetByID(ctx, interviewID)
		if err != nil {
			return lookupErr(err, "Interview not found")
		}
		app, err := uc.appRepo.GetByID(ctx, iv.ApplicationID)
		if err != nil {
			return lookupErr(err, "Application not found")
		}
		if !policy.CanWriteApplication(actor, app, policy.ManageInterview) {
			return apperror.Forbidden("Only the vacancy owner can manage interviews")
		}

		fields := validation.FieldErrors{}
		fields.Merge(uc.validate.Struct(in))
		checkScore(fields, in.Score)
		if d := in.DurationMinutes; d != nil && (*d <= 0 || *d > domain.MaxInterviewMinutes) {
			fields.Add("duration_minutes", "must be between 1 and 1440")
		}
		if err := fields.Err(); err != nil {
			return err
		}

		switch iv.Status {
		case domain.InterviewCancelled:
			return apperror.State("Cancelled interviews cannot be changed")
		case domain.InterviewCompleted:
			if in.ScheduledAt != nil || in.DurationMinutes != nil || in.Location != nil || in.Status != nil {
				return apperror.State("Completed interviews only accept feedback and score")
			}
		}

		if in.ScheduledAt != nil && !in.ScheduledAt.Equal(iv.ScheduledAt) {
			iv.ScheduledAt = in.ScheduledAt.UTC()
			iv.Status = domain.InterviewRescheduled
		}
		if in.DurationMinutes != nil {
			iv.DurationMinutes = *in.DurationMinutes
		}
		if in.Location != nil {
			iv.Location = *in.Location
		}
		if in.Status != nil {
			iv.Status = *in.Status
		}
		if in.Feedback != nil {
			iv.Feedback = in.Feedback
		}
		if in.Score != nil {
			iv.Score = in.Score
		}
		iv.UpdatedAt = clock()

		if err := uc.interviewRepo.Update(ctx, iv); err != nil {
			return lookupErr(err, "Interview not found")
		}
		return nil
	})
	if err != nil {
		return nil, appErr(err)
	}
	return iv, nil
}

// ListInterviews is visible to everyone who can read the application.
func (uc *interviewUsecase) ListInterviews(ctx context.Context, actor *domain.Principal, applicationID int64) ([]domain.Interview, error) {
	app, err := uc.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, lookupErr(err, "Application not found")
	}
	if !policy.CanReadApplication(actor, app) {
		return nil, apperror.Forbidden("You do not have access to this application")
	}

	interviews, err := uc.interviewRepo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return interviews, nil
}

func checkScore(fields validation.FieldErrors, score *int) {
	if score != nil && (*score < domain.MinInterviewScore || *score > domain.MaxInterviewScore) {
		fields.Add("score", "must be between 1 and 10")
	}
}
