package domain

import (
	"context"
	"fmt"
	"time"
)

type VacancyState string

const (
	VacancyOpen   VacancyState = "open"
	VacancyClosed VacancyState = "closed"
)

type Modality string

const (
	ModalityRemote Modality = "remote"
	ModalityOnsite Modality = "onsite"
	ModalityHybrid Modality = "hybrid"
)

func (m Modality) IsValid() bool {
	switch m {
	case ModalityRemote, ModalityOnsite, ModalityHybrid:
		return true
	default:
		return false
	}
}

// MaxVacancySalary is the largest value the NUMERIC(10,2) salary columns hold.
const MaxVacancySalary = 99_999_999.99

// Technology is identified by its canonical (title cased) name.
type Technology struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Vacancy struct {
	ID                 int64        `json:"id"`
	EmployerID         int64        `json:"employer_id"`
	EmployerUserID     string       `json:"-"`
	EmployerName       string       `json:"employer_name,omitempty"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Technologies       []Technology `json:"technologies"`
	Modality           Modality     `json:"modality"`
	Location           string       `json:"location"`
	SalaryMin          *float64     `json:"salary_min,omitempty"`
	SalaryMax          *float64     `json:"salary_max,omitempty"`
	ExperienceRequired string       `json:"experience_required,omitempty"`
	PublicationDate    time.Time    `json:"publication_date"`
	ClosingDate        *time.Time   `json:"closing_date,omitempty"`
	State              VacancyState `json:"state"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (v *Vacancy) IsOpen() bool {
	return v.State == VacancyOpen
}

// SalaryRange renders the stored salary bounds for display; it is never persisted.
func (v *Vacancy) SalaryRange() string {
	switch {
	case v.SalaryMin != nil && v.SalaryMax != nil:
		return fmt.Sprintf("$%.2f - $%.2f", *v.SalaryMin, *v.SalaryMax)
	case v.SalaryMin != nil:
		return fmt.Sprintf("From $%.2f", *v.SalaryMin)
	case v.SalaryMax != nil:
		return fmt.Sprintf("Up to $%.2f", *v.SalaryMax)
	default:
		return "Salary not specified"
	}
}

// CreateVacancyInput is the payload of a new vacancy. Technologies are raw names;
// they are canonicalised during resolution.
type CreateVacancyInput struct {
	Title              string     `json:"title" validate:"required,min=5,max=100,no_emoji"`
	Description        string     `json:"description" validate:"required,min=20,max=1000"`
	Technologies       []string   `json:"technology"`
	Modality           Modality   `json:"modality" validate:"omitempty,oneof=remote onsite hybrid"`
	Location           string     `json:"location" validate:"required,max=100"`
	SalaryMin          *float64   `json:"salary_min"`
	SalaryMax          *float64   `json:"salary_max"`
	ExperienceRequired string     `json:"experience_required" validate:"max=50"`
	ClosingDate        *time.Time `json:"closing_date"`
}

// UpdateVacancyInput distinguishes absent fields (nil) from present ones. A non-nil
// Technologies pointing at an empty slice clears all associations. The optional
// columns accept an explicit null, which clears them.
type UpdateVacancyInput struct {
	Title              *string             `json:"title" validate:"omitempty,min=5,max=100,no_emoji"`
	Description        *string             `json:"description" validate:"omitempty,min=20,max=1000"`
	Technologies       *[]string           `json:"technology"`
	Modality           *Modality           `json:"modality" validate:"omitempty,oneof=remote onsite hybrid"`
	Location           *string             `json:"location" validate:"omitempty,max=100"`
	SalaryMin          Optional[float64]   `json:"salary_min" swaggertype:"number"`
	SalaryMax          Optional[float64]   `json:"salary_max" swaggertype:"number"`
	ExperienceRequired *string             `json:"experience_required" validate:"omitempty,max=50"`
	ClosingDate        Optional[time.Time] `json:"closing_date" swaggertype:"string" format:"date-time"`
}

type VacancyRepository interface {
	Create(ctx context.Context, v *Vacancy) error
	GetByID(ctx context.Context, id int64) (*Vacancy, error)
	// GetByIDForShare reads the vacancy and keeps it from changing state until the
	// surrounding transaction ends.
	GetByIDForShare(ctx context.Context, id int64) (*Vacancy, error)
	// GetByIDForUpdate reads the vacancy and locks it for writing until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Vacancy, error)
	// Update writes the editable fields. It never touches State; see UpdateState.
	Update(ctx context.Context, v *Vacancy) error
	UpdateState(ctx context.Context, id int64, state VacancyState, at time.Time) error
}

type TechnologyRepository interface {
	// GetOrCreate returns the technology with the given canonical name, inserting it when
	// missing. Concurrent first creation of the same name yields the same row.
	GetOrCreate(ctx context.Context, name string) (*Technology, error)
	Attach(ctx context.Context, vacancyID, technologyID int64) error
	ClearVacancy(ctx context.Context, vacancyID int64) error
	ListByVacancy(ctx context.Context, vacancyID int64) ([]Technology, error)
}

type VacancyUsecase interface {
	CreateVacancy(ctx context.Context, actor *Principal, in CreateVacancyInput) (*Vacancy, error)
	UpdateVacancy(ctx context.Context, actor *Principal, id int64, in UpdateVacancyInput) (*Vacancy, error)
	CloseVacancy(ctx context.Context, actor *Principal, id int64) (*Vacancy, error)
	ReopenVacancy(ctx context.Context, actor *Principal, id int64) (*Vacancy, error)
	GetVacancy(ctx context.Context, id int64) (*Vacancy, error)
	AttachTechnologies(ctx context.Context, vacancyID int64, names []string) ([]Technology, error)
	ReplaceTechnologies(ctx context.Context, vacancyID int64, names []string) ([]Technology, error)
}
