// Package policy holds the authorization predicates consulted by the usecases and the
// HTTP layer. Predicates are pure; they inspect the principal's typed capabilities and
// the ownership fields already loaded on the resource.
package policy

import "job-board-backend/internal/domain"

type ActionKind int

const (
	ActionSetStatus ActionKind = iota + 1
	ActionEditNotes
	ActionScheduleInterview
	ActionManageInterview
)

// Action is a write intent against an application.
type Action struct {
	Kind   ActionKind
	Status domain.ApplicationStatus // target status for ActionSetStatus
}

func SetStatus(to domain.ApplicationStatus) Action {
	return Action{Kind: ActionSetStatus, Status: to}
}

var (
	EditNotes         = Action{Kind: ActionEditNotes}
	ScheduleInterview = Action{Kind: ActionScheduleInterview}
	ManageInterview   = Action{Kind: ActionManageInterview}
)

// IsApplicant reports whether actor submitted app.
func IsApplicant(actor *domain.Principal, app *domain.JobApplication) bool {
	id, ok := actor.EmployeeProfileID()
	return ok && app != nil && id == app.EmployeeID
}

// OwnsTargetVacancy reports whether actor is the employer of the vacancy app targets.
func OwnsTargetVacancy(actor *domain.Principal, app *domain.JobApplication) bool {
	id, ok := actor.EmployerProfileID()
	return ok && app != nil && id == app.VacancyEmployerID
}

func CanReadApplication(actor *domain.Principal, app *domain.JobApplication) bool {
	if actor == nil || app == nil {
		return false
	}
	return actor.IsAdmin() || IsApplicant(actor, app) || OwnsTargetVacancy(actor, app)
}

// CanSeeNotes reports whether the employer-internal notes may be shown to actor.
func CanSeeNotes(actor *domain.Principal, app *domain.JobApplication) bool {
	return actor.IsAdmin() || OwnsTargetVacancy(actor, app)
}

// CanWriteApplication applies the per-action rules. The vacancy owner may perform every
// action; the applicant may only withdraw, and only while the application allows it.
// Admins read but never write.
func CanWriteApplication(actor *domain.Principal, app *domain.JobApplication, action Action) bool {
	if actor == nil || app == nil {
		return false
	}
	if OwnsTargetVacancy(actor, app) {
		return true
	}
	if !IsApplicant(actor, app) || action.Kind != ActionSetStatus {
		return false
	}
	if action.Status != domain.StatusWithdrawn {
		return false
	}
	return app.CanWithdraw() || app.Status == domain.StatusWithdrawn
}

func CanWriteVacancy(actor *domain.Principal, v *domain.Vacancy) bool {
	id, ok := actor.EmployerProfileID()
	return ok && v != nil && id == v.EmployerID
}

// IsSelfApplication reports whether actor would be applying to a vacancy it owns,
// either by identity or through its own employer profile.
func IsSelfApplication(actor *domain.Principal, v *domain.Vacancy) bool {
	if actor == nil || v == nil {
		return false
	}
	if v.EmployerUserID != "" && v.EmployerUserID == actor.UserID {
		return true
	}
	return CanWriteVacancy(actor, v)
}
