package postgres

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type vacancyRepo struct {
	db *pgxpool.Pool
}

// NewVacancyRepository creates a new vacancy repository
func NewVacancyRepository(db *pgxpool.Pool) domain.VacancyRepository {
	return &vacancyRepo{db: db}
}

const vacancyColumns = `
	v.id, v.employer_id, ep.user_id::text, ep.company_name,
	v.title, v.description, v.modality, v.location,
	v.salary_min::float8, v.salary_max::float8, v.experience_required,
	v.publication_date, v.closing_date, v.state, v.updated_at`

func scanVacancy(row pgx.Row) (*domain.Vacancy, error) {
	var v domain.Vacancy
	err := row.Scan(
		&v.ID, &v.EmployerID, &v.EmployerUserID, &v.EmployerName,
		&v.Title, &v.Description, &v.Modality, &v.Location,
		&v.SalaryMin, &v.SalaryMax, &v.ExperienceRequired,
		&v.PublicationDate, &v.ClosingDate, &v.State, &v.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

// Create inserts a new vacancy; Technologies are attached separately.
func (r *vacancyRepo) Create(ctx context.Context, v *domain.Vacancy) error {
	query := `
		INSERT INTO vacancies (employer_id, title, description, modality, location, salary_min, salary_max,
			experience_required, publication_date, closing_date, state, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	return mapErr(conn(ctx, r.db).QueryRow(ctx, query,
		v.EmployerID,
		v.Title,
		v.Description,
		v.Modality,
		v.Location,
		v.SalaryMin,
		v.SalaryMax,
		v.ExperienceRequired,
		v.PublicationDate,
		v.ClosingDate,
		v.State,
		v.UpdatedAt,
	).Scan(&v.ID))
}

// GetByID retrieves a vacancy with its employer and technologies
func (r *vacancyRepo) GetByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
		FROM vacancies v
		JOIN employer_profiles ep ON ep.id = v.employer_id
		WHERE v.id = $1`

	v, err := withReadRetry(ctx, func() (*domain.Vacancy, error) {
		return scanVacancy(conn(ctx, r.db).QueryRow(ctx, query, id))
	})
	if err != nil {
		return nil, err
	}

	v.Technologies, err = listTechnologies(ctx, conn(ctx, r.db), id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetByIDForShare locks the vacancy row against concurrent updates (closing) for
// the rest of the transaction.
func (r *vacancyRepo) GetByIDForShare(ctx context.Context, id int64) (*domain.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
		FROM vacancies v
		JOIN employer_profiles ep ON ep.id = v.employer_id
		WHERE v.id = $1
		FOR SHARE OF v`

	return scanVacancy(conn(ctx, r.db).QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the vacancy row against concurrent edits and state changes
// for the rest of the transaction.
func (r *vacancyRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
		FROM vacancies v
		JOIN employer_profiles ep ON ep.id = v.employer_id
		WHERE v.id = $1
		FOR UPDATE OF v`

	q := conn(ctx, r.db)
	v, err := scanVacancy(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	v.Technologies, err = listTechnologies(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Update writes the editable columns; state is owned by UpdateState.
func (r *vacancyRepo) Update(ctx context.Context, v *domain.Vacancy) error {
	query := `
		UPDATE vacancies
		SET title = $1, description = $2, modality = $3, location = $4, salary_min = $5, salary_max = $6,
			experience_required = $7, closing_date = $8, updated_at = $9
		WHERE id = $10`

	tag, err := conn(ctx, r.db).Exec(ctx, query,
		v.Title,
		v.Description,
		v.Modality,
		v.Location,
		v.SalaryMin,
		v.SalaryMax,
		v.ExperienceRequired,
		v.ClosingDate,
		v.UpdatedAt,
		v.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vacancyRepo) UpdateState(ctx context.Context, id int64, state domain.VacancyState, at time.Time) error {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE vacancies SET state = $1, updated_at = $2 WHERE id = $3`, state, at, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
