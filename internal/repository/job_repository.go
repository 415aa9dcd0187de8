package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobpilot/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Job is the read-only job record the matcher builds its JobContext from.
type Job struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Company         string
	Category        string
	Location        string
	RequiredSkills  []string
	PreferredSkills []string
}

type JobRepository interface {
	FindByID(ctx context.Context, jobID uuid.UUID) (Job, bool, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (Job, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id,
		        COALESCE(title, ''),
		        COALESCE(description, ''),
		        COALESCE(company, ''),
		        COALESCE(category, ''),
		        COALESCE(location, ''),
		        COALESCE(required_skills, '{}'),
		        COALESCE(preferred_skills, '{}')
		 FROM jobs
		 WHERE id = $1`,
		jobID,
	)

	var j Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.Company,
		&j.Category,
		&j.Location,
		&j.RequiredSkills,
		&j.PreferredSkills,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Job{}, false, nil
		}
		return Job{}, false, err
	}
	return j, true, nil
}
