package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tycoon/database"
	"tycoon/domain/entities"
)

// JobRepository implements the JobRepository interface. Jobs are seeded
// by migrations and read-only at runtime.
type JobRepository struct {
	q queryable
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *database.DB) *JobRepository {
	return &JobRepository{q: db.Pool}
}

// newJobRepositoryWithTx creates a new job repository with a transaction
func newJobRepositoryWithTx(tx queryable) *JobRepository {
	return &JobRepository{q: tx}
}

// GetByID retrieves a job by ID, or nil when unknown
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*entities.Job, error) {
	query := `
		SELECT id, name, salary, cooldown_minutes, energy_cost, created_at
		FROM jobs
		WHERE id = $1
	`

	var job entities.Job
	err := r.q.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.Name,
		&job.Salary,
		&job.CooldownMinutes,
		&job.EnergyCost,
		&job.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job %d: %w", id, err)
	}

	return &job, nil
}

// List returns all jobs ordered by salary
func (r *JobRepository) List(ctx context.Context) ([]*entities.Job, error) {
	query := `
		SELECT id, name, salary, cooldown_minutes, energy_cost, created_at
		FROM jobs
		ORDER BY salary
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*entities.Job
	for rows.Next() {
		var job entities.Job
		err := rows.Scan(
			&job.ID,
			&job.Name,
			&job.Salary,
			&job.CooldownMinutes,
			&job.EnergyCost,
			&job.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, nil
}
