package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobpilot/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Project mirrors a row of the projects table. Array columns come back as
// Postgres text[] and scan straight into string slices.
type Project struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Title              string
	Description        string
	Category           string
	Technologies       []string
	SkillsDemonstrated []string
	Highlights         []string
}

type ProjectRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Project, error)
	FindByID(ctx context.Context, projectID uuid.UUID) (Project, bool, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id,
	user_id,
	COALESCE(title, ''),
	COALESCE(description, ''),
	COALESCE(category, ''),
	COALESCE(technologies, '{}'),
	COALESCE(skills_demonstrated, '{}'),
	COALESCE(highlights, '{}')`

// FindByUserID returns the user's portfolio in creation order, so repeated
// match calls see projects in a stable sequence.
func (r *PostgresProjectRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE user_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRepository) FindByID(ctx context.Context, projectID uuid.UUID) (Project, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE id = $1`,
		projectID,
	)

	p, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Project{}, false, nil
		}
		return Project{}, false, err
	}
	return p, true, nil
}

func scanProject(row database.Row) (Project, error) {
	var p Project
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Technologies,
		&p.SkillsDemonstrated,
		&p.Highlights,
	)
	return p, err
}
