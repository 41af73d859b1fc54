package postgres

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type technologyRepo struct {
	db *pgxpool.Pool
}

func NewTechnologyRepository(db *pgxpool.Pool) domain.TechnologyRepository {
	return &technologyRepo{db: db}
}

// GetOrCreate inserts name if missing and returns the stored row. When a concurrent
// writer wins the insert, DO NOTHING returns no row and the follow-up select finds theirs.
func (r *technologyRepo) GetOrCreate(ctx context.Context, name string) (*domain.Technology, error) {
	q := conn(ctx, r.db)

	var t domain.Technology
	err := q.QueryRow(ctx, `
		INSERT INTO technologies (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name`, name).Scan(&t.ID, &t.Name)
	if err == nil {
		return &t, nil
	}
	if err = mapErr(err); !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	err = q.QueryRow(ctx, `SELECT id, name FROM technologies WHERE name = $1`, name).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

// Attach is idempotent; an existing association is left as is.
func (r *technologyRepo) Attach(ctx context.Context, vacancyID, technologyID int64) error {
	_, err := conn(ctx, r.db).Exec(ctx, `
		INSERT INTO vacancy_technologies (vacancy_id, technology_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, vacancyID, technologyID)
	return mapErr(err)
}

func (r *technologyRepo) ClearVacancy(ctx context.Context, vacancyID int64) error {
	_, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM vacancy_technologies WHERE vacancy_id = $1`, vacancyID)
	return mapErr(err)
}

func (r *technologyRepo) ListByVacancy(ctx context.Context, vacancyID int64) ([]domain.Technology, error) {
	return withReadRetry(ctx, func() ([]domain.Technology, error) {
		return listTechnologies(ctx, conn(ctx, r.db), vacancyID)
	})
}

func listTechnologies(ctx context.Context, q querier, vacancyID int64) ([]domain.Technology, error) {
	rows, err := q.Query(ctx, `
		SELECT t.id, t.name
		FROM technologies t
		JOIN vacancy_technologies vt ON vt.technology_id = t.id
		WHERE vt.vacancy_id = $1
		ORDER BY t.name`, vacancyID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	techs := []domain.Technology{}
	for rows.Next() {
		var t domain.Technology
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}
