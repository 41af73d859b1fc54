package sqlite

import (
	"context"

	"job-board-backend/internal/domain"

	"gorm.io/gorm"
)

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	m := interviewFromDomain(iv)
	if err := dbFrom(ctx, r.db).Create(m).Error; err != nil {
		return mapErr(err)
	}
	iv.ID = m.ID
	return nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	var m interviewModel
	if err := dbFrom(ctx, r.db).First(&m, id).Error; err != nil {
		return nil, mapErr(err)
	}
	iv := m.toDomain()
	return &iv, nil
}

func (r *interviewRepo) ListByApplication(ctx context.Context, applicationID int64) ([]domain.Interview, error) {
	var models []interviewModel
	err := dbFrom(ctx, r.db).Where("application_id = ?", applicationID).
		Order("scheduled_date ASC").Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, mapErr(err)
	}

	interviews := make([]domain.Interview, 0, len(models))
	for i := range models {
		interviews = append(interviews, models[i].toDomain())
	}
	return interviews, nil
}

func (r *interviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	res := dbFrom(ctx, r.db).Model(&interviewModel{}).Where("id = ?", iv.ID).Updates(map[string]interface{}{
		"scheduled_date":   iv.ScheduledAt,
		"duration_minutes": iv.DurationMinutes,
		"location":         iv.Location,
		"status":           string(iv.Status),
		"feedback":         iv.Feedback,
		"score":            iv.Score,
		"updated_at":       iv.UpdatedAt,
	})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
