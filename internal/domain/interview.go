package domain

import (
	"context"
	"time"
)

type InterviewType string

const (
	InterviewPhone     InterviewType = "phone"
	InterviewVideo     InterviewType = "video"
	InterviewInPerson  InterviewType = "in_person"
	InterviewTechnical InterviewType = "technical"
)

func (t InterviewType) IsValid() bool {
	switch t {
	case InterviewPhone, InterviewVideo, InterviewInPerson, InterviewTechnical:
		return true
	default:
		return false
	}
}

type InterviewStatus string

const (
	InterviewScheduled   InterviewStatus = "scheduled"
	InterviewCompleted   InterviewStatus = "completed"
	InterviewCancelled   InterviewStatus = "cancelled"
	InterviewRescheduled InterviewStatus = "rescheduled"
)

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewRescheduled:
		return true
	default:
		return false
	}
}

const (
	MinInterviewScore    = 1
	MaxInterviewScore    = 10
	MaxInterviewMinutes  = 24 * 60
	MaxInterviewLocation = 255
	MaxInterviewFeedback = 5000
)

type Interview struct {
	ID              int64           `json:"id"`
	ApplicationID   int64           `json:"application_id"`
	Type            InterviewType   `json:"interview_type"`
	ScheduledAt     time.Time       `json:"scheduled_date"`
	DurationMinutes int             `json:"duration_minutes"`
	Location        string          `json:"location"`
	InterviewerID   string          `json:"interviewer_id"`
	Status          InterviewStatus `json:"status"`
	Feedback        *string         `json:"feedback,omitempty"`
	Score           *int            `json:"score,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ScheduleInterviewInput struct {
	Type            InterviewType `json:"interview_type" validate:"required,oneof=phone video in_person technical"`
	ScheduledAt     time.Time     `json:"scheduled_date" validate:"required,future_time"`
	DurationMinutes int           `json:"duration_minutes" validate:"gt=0,lte=1440"`
	Location        string        `json:"location" validate:"max=255"`
	Score           *int          `json:"score"`
}

// UpdateInterviewInput is a partial update; nil fields are left untouched.
type UpdateInterviewInput struct {
	ScheduledAt     *time.Time       `json:"scheduled_date" validate:"omitempty,future_time"`
	DurationMinutes *int             `json:"duration_minutes"`
	Location        *string          `json:"location" validate:"omitempty,max=255"`
	Status          *InterviewStatus `json:"status" validate:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	Feedback        *string          `json:"feedback" validate:"omitempty,max=5000"`
	Score           *int             `json:"score"`
}

type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]Interview, error)
	Update(ctx context.Context, iv *Interview) error
}

type InterviewUsecase interface {
	ScheduleInterview(ctx context.Context, actor *Principal, applicationID int64, in ScheduleInterviewInput) (*Interview, error)
	UpdateInterview(ctx context.Context, actor *Principal, interviewID int64, in UpdateInterviewInput) (*Interview, error)
	ListInterviews(ctx context.Context, actor *Principal, applicationID int64) ([]Interview, error)
}
