package sqlite

import (
	"context"

	"job-board-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type technologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepository(db *gorm.DB) domain.TechnologyRepository {
	return &technologyRepo{db: db}
}

func (r *technologyRepo) GetOrCreate(ctx context.Context, name string) (*domain.Technology, error) {
	db := dbFrom(ctx, r.db)

	m := technologyModel{Name: name}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&m)
	if res.Error != nil {
		return nil, mapErr(res.Error)
	}
	if res.RowsAffected == 0 || m.ID == 0 {
		m = technologyModel{}
		if err := db.Where("name = ?", name).First(&m).Error; err != nil {
			return nil, mapErr(err)
		}
	}
	return &domain.Technology{ID: m.ID, Name: m.Name}, nil
}

func (r *technologyRepo) Attach(ctx context.Context, vacancyID, technologyID int64) error {
	link := vacancyTechnologyModel{VacancyID: vacancyID, TechnologyID: technologyID}
	return mapErr(dbFrom(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error)
}

func (r *technologyRepo) ClearVacancy(ctx context.Context, vacancyID int64) error {
	return mapErr(dbFrom(ctx, r.db).Where("vacancy_id = ?", vacancyID).Delete(&vacancyTechnologyModel{}).Error)
}

func (r *technologyRepo) ListByVacancy(ctx context.Context, vacancyID int64) ([]domain.Technology, error) {
	return listTechnologies(dbFrom(ctx, r.db), vacancyID)
}

func listTechnologies(db *gorm.DB, vacancyID int64) ([]domain.Technology, error) {
	var models []technologyModel
	err := db.Where("id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&vacancyTechnologyModel{}).
			Select("technology_id").Where("vacancy_id = ?", vacancyID),
	).Order("name").Find(&models).Error
	if err != nil {
		return nil, mapErr(err)
	}

	techs := make([]domain.Technology, 0, len(models))
	for _, m := range models {
		techs = append(techs, domain.Technology{ID: m.ID, Name: m.Name})
	}
	return techs, nil
}
