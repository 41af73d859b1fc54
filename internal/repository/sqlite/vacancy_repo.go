package sqlite

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type vacancyRepo struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) domain.VacancyRepository {
	return &vacancyRepo{db: db}
}

func (r *vacancyRepo) Create(ctx context.Context, v *domain.Vacancy) error {
	m := vacancyFromDomain(v)
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(m).Error; err != nil {
		return mapErr(err)
	}
	v.ID = m.ID
	return nil
}

func (r *vacancyRepo) GetByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	v, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Technologies, err = listTechnologies(dbFrom(ctx, r.db), id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetByIDForShare is a plain read here; the single connection already serializes writers.
func (r *vacancyRepo) GetByIDForShare(ctx context.Context, id int64) (*domain.Vacancy, error) {
	return r.get(ctx, id)
}

// GetByIDForUpdate is a plain read for the same reason as GetByIDForShare.
func (r *vacancyRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vacancy, error) {
	return r.GetByID(ctx, id)
}

func (r *vacancyRepo) get(ctx context.Context, id int64) (*domain.Vacancy, error) {
	var m vacancyModel
	if err := dbFrom(ctx, r.db).Preload("Employer").First(&m, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return m.toDomain(), nil
}

// Update writes the editable columns; state is owned by UpdateState.
func (r *vacancyRepo) Update(ctx context.Context, v *domain.Vacancy) error {
	res := dbFrom(ctx, r.db).Model(&vacancyModel{}).Where("id = ?", v.ID).Updates(map[string]interface{}{
		"title":               v.Title,
		"description":         v.Description,
		"modality":            string(v.Modality),
		"location":            v.Location,
		"salary_min":          v.SalaryMin,
		"salary_max":          v.SalaryMax,
		"experience_required": v.ExperienceRequired,
		"closing_date":        v.ClosingDate,
		"updated_at":          v.UpdatedAt,
	})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vacancyRepo) UpdateState(ctx context.Context, id int64, state domain.VacancyState, at time.Time) error {
	res := dbFrom(ctx, r.db).Model(&vacancyModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"state":      string(state),
		"updated_at": at,
	})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
