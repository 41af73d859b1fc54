package sqlite

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	m := applicationModel{
		EmployeeID:        app.EmployeeID,
		VacancyID:         app.VacancyID,
		Status:            string(app.Status),
		CoverLetter:       app.CoverLetter,
		Notes:             app.Notes,
		SalaryExpectation: app.SalaryExpectation,
		AvailabilityDate:  app.AvailabilityDate,
		AppliedAt:         app.AppliedAt,
		UpdatedAt:         app.UpdatedAt,
	}
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return mapErr(err)
	}
	app.ID = m.ID
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	var m applicationModel
	if err := dbFrom(ctx, r.db).Preload("Vacancy").First(&m, id).Error; err != nil {
		return nil, mapErr(err)
	}
	app := m.toDomain()
	return &app, nil
}

// GetByIDForUpdate relies on the single connection for exclusion.
func (r *applicationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.JobApplication, error) {
	return r.GetByID(ctx, id)
}

func (r *applicationRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.JobApplication, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	})
}

func (r *applicationRepo) ListByEmployer(ctx context.Context, employerID int64) ([]domain.JobApplication, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		owned := db.Session(&gorm.Session{NewDB: true}).Model(&vacancyModel{}).
			Select("id").Where("employer_id = ?", employerID)
		return db.Where("vacancy_id IN (?)", owned)
	})
}

func (r *applicationRepo) ListByVacancy(ctx context.Context, vacancyID int64) ([]domain.JobApplication, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("vacancy_id = ?", vacancyID)
	})
}

func (r *applicationRepo) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.JobApplication, error) {
	var models []applicationModel
	err := dbFrom(ctx, r.db).Scopes(scope).Preload("Vacancy").
		Order("applied_at DESC").Order("id DESC").Find(&models).Error
	if err != nil {
		return nil, mapErr(err)
	}

	apps := make([]domain.JobApplication, 0, len(models))
	for i := range models {
		apps = append(apps, models[i].toDomain())
	}
	return apps, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"status": string(status), "updated_at": at})
}

func (r *applicationRepo) UpdateNotes(ctx context.Context, id int64, notes *string, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"notes": notes, "updated_at": at})
}

func (r *applicationRepo) update(ctx context.Context, id int64, values map[string]interface{}) error {
	res := dbFrom(ctx, r.db).Model(&applicationModel{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
