package v1

import (
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

// CreateApplicationRequest carries availability_date as a calendar date (YYYY-MM-DD).
type CreateApplicationRequest struct {
	VacancyID         int64    `json:"vacancy_id"`
	CoverLetter       string   `json:"cover_letter"`
	SalaryExpectation *float64 `json:"salary_expectation"`
	AvailabilityDate  *string  `json:"availability_date"`
}

func (r CreateApplicationRequest) toInput() (domain.CreateApplicationInput, error) {
	in := domain.CreateApplicationInput{
		VacancyID:         r.VacancyID,
		CoverLetter:       r.CoverLetter,
		SalaryExpectation: r.SalaryExpectation,
	}
	if r.AvailabilityDate != nil && *r.AvailabilityDate != "" {
		d, err := time.Parse(dateLayout, *r.AvailabilityDate)
		if err != nil {
			return in, apperror.Validation(map[string]string{"availability_date": "must be a date in YYYY-MM-DD format"})
		}
		in.AvailabilityDate = &d
	}
	return in, nil
}

type ApplicationResponse struct {
	domain.JobApplication
	AvailabilityDate *string `json:"availability_date,omitempty"`
	CanWithdraw      bool    `json:"can_withdraw"`
	IsActive         bool    `json:"is_active"`
}

func newApplicationResponse(app *domain.JobApplication) ApplicationResponse {
	resp := ApplicationResponse{
		JobApplication: *app,
		CanWithdraw:    app.CanWithdraw(),
		IsActive:       app.IsActive(),
	}
	if app.AvailabilityDate != nil {
		d := app.AvailabilityDate.Format(dateLayout)
		resp.AvailabilityDate = &d
	}
	return resp
}

func newApplicationResponses(apps []domain.JobApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, newApplicationResponse(&apps[i]))
	}
	return out
}

type VacancyResponse struct {
	*domain.Vacancy
	SalaryRange string `json:"salary_range"`
	IsOpen      bool   `json:"is_open"`
}

func newVacancyResponse(v *domain.Vacancy) VacancyResponse {
	if v.Technologies == nil {
		v.Technologies = []domain.Technology{}
	}
	return VacancyResponse{
		Vacancy:     v,
		SalaryRange: v.SalaryRange(),
		IsOpen:      v.IsOpen(),
	}
}

// TechnologiesRequest is the body of the technology association endpoints.
type TechnologiesRequest struct {
	Technologies []string `json:"technology"`
}
