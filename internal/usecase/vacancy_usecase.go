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

type vacancyUsecase struct {
	tx          domain.Transactor
	vacancyRepo domain.VacancyRepository
	techRepo    domain.TechnologyRepository
	validate    *validator.Validate
}

func NewVacancyUsecase(
	tx domain.Transactor,
	vacancyRepo domain.VacancyRepository,
	techRepo domain.TechnologyRepository,
	validate *validator.Validate,
) domain.VacancyUsecase {
	return &vacancyUsecase{
		tx:          tx,
		vacancyRepo: vacancyRepo,
		techRepo:    techRepo,
		validate:    validate,
	}
}

// CreateVacancy publishes a new open vacancy owned by actor's employer profile.
func (uc *vacancyUsecase) CreateVacancy(ctx context.Context, actor *domain.Principal, in domain.CreateVacancyInput) (*domain.Vacancy, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	employerID, ok := actor.EmployerProfileID()
	if !ok {
		return nil, apperror.Forbidden("Only employers can publish vacancies")
	}

	if in.Modality == "" {
		in.Modality = domain.ModalityHybrid
	}

	now := clock()
	v := &domain.Vacancy{
		EmployerID:         employerID,
		EmployerUserID:     actor.UserID,
		Title:              in.Title,
		Description:        in.Description,
		Modality:           in.Modality,
		Location:           in.Location,
		SalaryMin:          in.SalaryMin,
		SalaryMax:          in.SalaryMax,
		ExperienceRequired: in.ExperienceRequired,
		PublicationDate:    now,
		ClosingDate:        in.ClosingDate,
		State:              domain.VacancyOpen,
		UpdatedAt:          now,
	}
	if actor.Employer != nil {
		v.EmployerName = actor.Employer.CompanyName
	}

	fields := validation.FieldErrors{}
	fields.Merge(uc.validate.Struct(in))
	checkVacancyRules(fields, v)
	names, invalid := canonicalTechnologyNames(in.Technologies)
	for k, msg := range invalid {
		fields.Add(k, msg)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.vacancyRepo.Create(ctx, v); err != nil {
			return apperror.Internal(err)
		}
		techs, err := uc.attach(ctx, v.ID, names)
		if err != nil {
			return err
		}
		v.Technologies = techs
		return nil
	})
	if err != nil {
		return nil, appErr(err)
	}

	logger.Log.Info("vacancy published", "vacancy_id", v.ID, "employer_id", v.EmployerID)
	return v, nil
}

// checkVacancyRules covers the cross-field rules struct tags cannot express.
func checkVacancyRules(fields validation.FieldErrors, v *domain.Vacancy) {
	if !v.Modality.IsValid() {
		fields.Add("modality", "must be one of: remote, onsite, hybrid")
	}
	if v.SalaryMin != nil && *v.SalaryMin < 0 {
		fields.Add("salary_min", "cannot be negative")
	}
	if v.SalaryMax != nil && *v.SalaryMax < 0 {
		fields.Add("salary_max", "cannot be negative")
	}
	if v.SalaryMin != nil && *v.SalaryMin > domain.MaxVacancySalary {
		fields.Add("salary_min", "cannot exceed 99999999.99")
	}
	if v.SalaryMax != nil && *v.SalaryMax > domain.MaxVacancySalary {
		fields.Add("salary_max", "cannot exceed 99999999.99")
	}
	if v.SalaryMin != nil && v.SalaryMax != nil && *v.SalaryMin >= *v.SalaryMax {
		fields.Add("salary_min", "must be lower than salary_max")
	}
	if v.ClosingDate != nil && !v.ClosingDate.After(v.PublicationDate) {
		fields.Add("closing_date", "must be after the publication date")
	}
}

// UpdateVacancy merges the present fields into the stored vacancy and revalidates the
// result. Technologies are only touched when the patch carries them.
func (uc *vacancyUsecase) UpdateVacancy(ctx context.Context, actor *domain.Principal, id int64, in domain.UpdateVacancyInput) (*domain.Vacancy, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	var v *domain.Vacancy
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		v, err = uc.vacancyRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "Vacancy not found")
		}
		if !policy.CanWriteVacancy(actor, v) {
			return apperror.Forbidden("Only the vacancy owner can edit it")
		}

		applyVacancyPatch(v, in)

		fields := validation.FieldErrors{}
		fields.Merge(uc.validate.Struct(in))
		checkVacancyRules(fields, v)
		var names []string
		if in.Technologies != nil {
			var invalid map[string]string
			names, invalid = canonicalTechnologyNames(*in.Technologies)
			for k, msg := range invalid {
				fields.Add(k, msg)
			}
		}
		if err := fields.Err(); err != nil {
			return err
		}

		v.UpdatedAt = clock()
		if err := uc.vacancyRepo.Update(ctx, v); err != nil {
			return lookupErr(err, "Vacancy not found")
		}

		if in.Technologies != nil {
			if err := uc.techRepo.ClearVacancy(ctx, v.ID); err != nil {
				return apperror.Internal(err)
			}
			if v.Technologies, err = uc.attach(ctx, v.ID, names); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, appErr(err)
	}
	return v, nil
}

func applyVacancyPatch(v *domain.Vacancy, in domain.UpdateVacancyInput) {
	if in.Title != nil {
		v.Title = *in.Title
	}
	if in.Description != nil {
		v.Description = *in.Description
	}
	if in.Modality != nil {
		v.Modality = *in.Modality
	}
	if in.Location != nil {
		v.Location = *in.Location
	}
	if in.SalaryMin.Set {
		v.SalaryMin = in.SalaryMin.Ptr()
	}
	if in.SalaryMax.Set {
		v.SalaryMax = in.SalaryMax.Ptr()
	}
	if in.ExperienceRequired != nil {
		v.ExperienceRequired = *in.ExperienceRequired
	}
	if in.ClosingDate.Set {
		v.ClosingDate = in.ClosingDate.Ptr()
	}
}

// CloseVacancy stops the vacancy from accepting applications. Closing twice is a no-op.
func (uc *vacancyUsecase) CloseVacancy(ctx context.Context, actor *domain.Principal, id int64) (*domain.Vacancy, error) {
	return uc.setState(ctx, actor, id, domain.VacancyClosed)
}

// ReopenVacancy fails once the closing date has passed.
func (uc *vacancyUsecase) ReopenVacancy(ctx context.Context, actor *domain.Principal, id int64) (*domain.Vacancy, error) {
	return uc.setState(ctx, actor, id, domain.VacancyOpen)
}

func (uc *vacancyUsecase) setState(ctx context.Context, actor *domain.Principal, id int64, state domain.VacancyState) (*domain.Vacancy, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	var v *domain.Vacancy
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		v, err = uc.vacancyRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "Vacancy not found")
		}
		if !policy.CanWriteVacancy(actor, v) {
			return apperror.Forbidden("Only the vacancy owner can change its state")
		}
		if v.State == state {
			return nil
		}

		now := clock()
		if state == domain.VacancyOpen && v.ClosingDate != nil && !v.ClosingDate.After(now) {
			return apperror.State("Vacancy closing date has passed; update it before reopening")
		}
		if err := uc.vacancyRepo.UpdateState(ctx, v.ID, state, now); err != nil {
			return lookupErr(err, "Vacancy not found")
		}
		v.State = state
		v.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, appErr(err)
	}

	logger.Log.Info("vacancy state changed", "vacancy_id", v.ID, "state", v.State)
	return v, nil
}

// GetVacancy is public; closed vacancies stay readable.
func (uc *vacancyUsecase) GetVacancy(ctx context.Context, id int64) (*domain.Vacancy, error) {
	v, err := uc.vacancyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Vacancy not found")
	}
	return v, nil
}

// AttachTechnologies resolves names to technologies, creating missing ones, and links
// them to the vacancy. Existing links are kept.
func (uc *vacancyUsecase) AttachTechnologies(ctx context.Context, vacancyID int64, names []string) ([]domain.Technology, error) {
	canonical, invalid := canonicalTechnologyNames(names)
	if invalid != nil {
		return nil, apperror.Validation(invalid)
	}

	var techs []domain.Technology
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.vacancyRepo.GetByIDForShare(ctx, vacancyID); err != nil {
			return lookupErr(err, "Vacancy not found")
		}
		var err error
		techs, err = uc.attach(ctx, vacancyID, canonical)
		return err
	})
	if err != nil {
		return nil, appErr(err)
	}
	return techs, nil
}

// ReplaceTechnologies makes names the vacancy's complete technology set.
func (uc *vacancyUsecase) ReplaceTechnologies(ctx context.Context, vacancyID int64, names []string) ([]domain.Technology, error) {
	canonical, invalid := canonicalTechnologyNames(names)
	if invalid != nil {
		return nil, apperror.Validation(invalid)
	}

	var techs []domain.Technology
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.vacancyRepo.GetByIDForShare(ctx, vacancyID); err != nil {
			return lookupErr(err, "Vacancy not found")
		}
		if err := uc.techRepo.ClearVacancy(ctx, vacancyID); err != nil {
			return apperror.Internal(err)
		}
		var err error
		techs, err = uc.attach(ctx, vacancyID, canonical)
		return err
	})
	if err != nil {
		return nil, appErr(err)
	}
	return techs, nil
}

// attach expects canonical, deduplicated names and a surrounding transaction.
func (uc *vacancyUsecase) attach(ctx context.Context, vacancyID int64, names []string) ([]domain.Technology, error) {
	techs := make([]domain.Technology, 0, len(names))
	for _, name := range names {
		t, err := uc.techRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if err := uc.techRepo.Attach(ctx, vacancyID, t.ID); err != nil {
			return nil, apperror.Internal(err)
		}
		techs = append(techs, *t)
	}
	metrics.RecordTechnologiesResolved(len(techs))
	return techs, nil
}
