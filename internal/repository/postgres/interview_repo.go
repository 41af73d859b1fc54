package postgres

import (
	"context"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewColumns = `
	id, application_id, interview_type, scheduled_date, duration_minutes, location,
	COALESCE(interviewer_id::text, ''), status, feedback, score, created_at, updated_at`

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var iv domain.Interview
	err := row.Scan(
		&iv.ID, &iv.ApplicationID, &iv.Type, &iv.ScheduledAt, &iv.DurationMinutes, &iv.Location,
		&iv.InterviewerID, &iv.Status, &iv.Feedback, &iv.Score, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &iv, nil
}

func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	query := `
		INSERT INTO interviews (application_id, interview_type, scheduled_date, duration_minutes, location,
			interviewer_id, status, feedback, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8, $9, $10, $11)
		RETURNING id`

	return mapErr(conn(ctx, r.db).QueryRow(ctx, query,
		iv.ApplicationID,
		iv.Type,
		iv.ScheduledAt,
		iv.DurationMinutes,
		iv.Location,
		iv.InterviewerID,
		iv.Status,
		iv.Feedback,
		iv.Score,
		iv.CreatedAt,
		iv.UpdatedAt,
	).Scan(&iv.ID))
}

func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	return withReadRetry(ctx, func() (*domain.Interview, error) {
		return scanInterview(conn(ctx, r.db).QueryRow(ctx, query, id))
	})
}

// ListByApplication returns interviews in schedule order
func (r *interviewRepo) ListByApplication(ctx context.Context, applicationID int64) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE application_id = $1 ORDER BY scheduled_date ASC, id ASC`

	return withReadRetry(ctx, func() ([]domain.Interview, error) {
		rows, err := conn(ctx, r.db).Query(ctx, query, applicationID)
		if err != nil {
			return nil, mapErr(err)
		}
		defer rows.Close()

		interviews := []domain.Interview{}
		for rows.Next() {
			iv, err := scanInterview(rows)
			if err != nil {
				return nil, err
			}
			interviews = append(interviews, *iv)
		}
		return interviews, rows.Err()
	})
}

func (r *interviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	query := `
		UPDATE interviews
		SET scheduled_date = $1, duration_minutes = $2, location = $3, status = $4, feedback = $5, score = $6, updated_at = $7
		WHERE id = $8`

	tag, err := conn(ctx, r.db).Exec(ctx, query,
		iv.ScheduledAt,
		iv.DurationMinutes,
		iv.Location,
		iv.Status,
		iv.Feedback,
		iv.Score,
		iv.UpdatedAt,
		iv.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
