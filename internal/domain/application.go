package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

// Application status constants
const (
	StatusPending            ApplicationStatus = "pending"
	StatusReviewing          ApplicationStatus = "reviewing"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusInterviewCompleted ApplicationStatus = "interview_completed"
	StatusRejected           ApplicationStatus = "rejected"
	StatusAccepted           ApplicationStatus = "accepted"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
)

// ApplicationStatuses lists every status in lifecycle order.
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewing,
	StatusInterviewScheduled,
	StatusInterviewCompleted,
	StatusRejected,
	StatusAccepted,
	StatusWithdrawn,
}

func (s ApplicationStatus) IsValid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusAccepted || s == StatusWithdrawn
}

const (
	MaxCoverLetterLength  = 1000
	MaxSalaryExpectation  = 1_000_000
	MaxStatusReasonLength = 500
	MaxNotesLength        = 5000
)

// JobApplication is an employee's submission against a vacancy.
type JobApplication struct {
	ID                int64             `json:"id"`
	EmployeeID        int64             `json:"employee_id"`
	VacancyID         int64             `json:"vacancy_id"`
	Status            ApplicationStatus `json:"status"`
	CoverLetter       string            `json:"cover_letter"`
	Notes             *string           `json:"notes,omitempty"` // employer-internal
	SalaryExpectation *float64          `json:"salary_expectation,omitempty"`
	AvailabilityDate  *time.Time        `json:"availability_date,omitempty"`
	AppliedAt         time.Time         `json:"applied_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	// Joined from the target vacancy
	VacancyEmployerID int64  `json:"-"`
	VacancyTitle      string `json:"vacancy_title,omitempty"`
}

func (a *JobApplication) CanWithdraw() bool {
	switch a.Status {
	case StatusPending, StatusReviewing, StatusInterviewScheduled:
		return true
	default:
		return false
	}
}

func (a *JobApplication) IsActive() bool {
	return !a.Status.IsTerminal()
}

// ApplicationStatusHistory is an immutable audit row, one per status change.
type ApplicationStatusHistory struct {
	ID             int64             `json:"id"`
	ApplicationID  int64             `json:"application_id"`
	PreviousStatus ApplicationStatus `json:"previous_status"`
	NewStatus      ApplicationStatus `json:"new_status"`
	ChangedBy      string            `json:"changed_by"`
	Reason         string            `json:"reason,omitempty"`
	ChangedAt      time.Time         `json:"changed_at"`
}

type CreateApplicationInput struct {
	VacancyID         int64      `json:"vacancy_id" validate:"required,gt=0"`
	CoverLetter       string     `json:"cover_letter" validate:"max=1000"`
	SalaryExpectation *float64   `json:"salary_expectation"`
	AvailabilityDate  *time.Time `json:"availability_date" validate:"omitempty,not_past_date"`
}

// UpdateApplicationInput is a partial update; nil fields are left untouched.
type UpdateApplicationInput struct {
	Status *ApplicationStatus `json:"status"`
	Notes  *string            `json:"notes" validate:"omitempty,max=5000"`
	Reason string             `json:"reason" validate:"max=500"`
}

// ApplicationScope selects which side of the actor's relationships a listing covers.
type ApplicationScope string

const (
	ScopeDefault  ApplicationScope = ""
	ScopeEmployee ApplicationScope = "employee"
	ScopeEmployer ApplicationScope = "employer"
)

type ApplicationRepository interface {
	// Create fails with ErrDuplicate when the (employee, vacancy) pair already exists.
	Create(ctx context.Context, app *JobApplication) error
	GetByID(ctx context.Context, id int64) (*JobApplication, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*JobApplication, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]JobApplication, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]JobApplication, error)
	ListByVacancy(ctx context.Context, vacancyID int64) ([]JobApplication, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus, at time.Time) error
	UpdateNotes(ctx context.Context, id int64, notes *string, at time.Time) error
}

type StatusHistoryRepository interface {
	Append(ctx context.Context, entry *ApplicationStatusHistory) error
	ListByApplication(ctx context.Context, applicationID int64) ([]ApplicationStatusHistory, error)
}

// ApplicationUsecase is the application lifecycle engine.
type ApplicationUsecase interface {
	CreateApplication(ctx context.Context, actor *Principal, in CreateApplicationInput) (*JobApplication, error)
	TransitionStatus(ctx context.Context, actor *Principal, applicationID int64, status ApplicationStatus, reason string) (*JobApplication, error)
	UpdateNotes(ctx context.Context, actor *Principal, applicationID int64, notes *string) (*JobApplication, error)
	UpdateApplication(ctx context.Context, actor *Principal, applicationID int64, in UpdateApplicationInput) (*JobApplication, error)

	GetApplication(ctx context.Context, actor *Principal, applicationID int64) (*JobApplication, error)
	ListApplications(ctx context.Context, actor *Principal, scope ApplicationScope) ([]JobApplication, error)
	ListVacancyApplications(ctx context.Context, actor *Principal, vacancyID int64) ([]JobApplication, error)
	GetStatusHistory(ctx context.Context, actor *Principal, applicationID int64) ([]ApplicationStatusHistory, error)
}
