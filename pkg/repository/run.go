package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/aidigest/pkg/domain"
)

// RunRepository handles fetch run records
type RunRepository struct {
	db *sqlx.DB
}

// runSQL represents a fetch run for SQL operations
type runSQL struct {
	ID               string                                         `db:"id"`
	Status           string                                         `db:"status"`
	ModulesProcessed jsonSQL[map[domain.Module]domain.ModuleResult] `db:"modules_processed"`
	TotalItems       int                                            `db:"total_items"`
	Errors           jsonSQL[[]string]                              `db:"errors"`
	StartedAt        *time.Time                                     `db:"started_at"`
	CompletedAt      *time.Time                                     `db:"completed_at"`
	CreatedAt        time.Time                                      `db:"created_at"`
}

const runColumns = "id, status, modules_processed, total_items, errors, started_at, completed_at, created_at"

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// InsertRun creates a new run record
func (r *RunRepository) InsertRun(ctx context.Context, run domain.FetchRun) error {
	if run.ID == "" {
		return errors.New("insert run: empty id")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	row := toRunSQL(run)
	return retry(ctx, "insert run", func() error {
		_, err := r.db.NamedExecContext(ctx, `INSERT INTO fetch_runs (`+runColumns+`) VALUES
			(:id, :status, :modules_processed, :total_items, :errors, :started_at, :completed_at, :created_at)`, &row)
		return err
	})
}

// UpdateRun stores progress and state of an existing run. Terminal runs are immutable.
func (r *RunRepository) UpdateRun(ctx context.Context, run domain.FetchRun) error {
	row := toRunSQL(run)
	var affected int64
	err := retry(ctx, "update run", func() error {
		res, err := r.db.NamedExecContext(ctx, `UPDATE fetch_runs SET status = :status,
			modules_processed = :modules_processed, total_items = :total_items, errors = :errors,
			started_at = :started_at, completed_at = :completed_at
			WHERE id = :id AND status NOT IN ('completed', 'failed')`, &row)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, gerr := r.GetRun(ctx, run.ID); gerr != nil {
			return fmt.Errorf("update run: %w", gerr)
		}
		return fmt.Errorf("update run %s: already finished", run.ID)
	}
	return nil
}

// GetRun retrieves a run by id
func (r *RunRepository) GetRun(ctx context.Context, id string) (domain.FetchRun, error) {
	var row runSQL
	query := r.db.Rebind("SELECT " + runColumns + " FROM fetch_runs WHERE id = ?")
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FetchRun{}, fmt.Errorf("get run %s: %w", id, ErrNotFound)
		}
		return domain.FetchRun{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// LatestRun retrieves the most recently created run
func (r *RunRepository) LatestRun(ctx context.Context) (domain.FetchRun, error) {
	var row runSQL
	query := "SELECT " + runColumns + " FROM fetch_runs ORDER BY created_at DESC, id DESC LIMIT 1"
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FetchRun{}, fmt.Errorf("latest run: %w", ErrNotFound)
		}
		return domain.FetchRun{}, fmt.Errorf("latest run: %w", err)
	}
	return row.toDomain(), nil
}

func toRunSQL(run domain.FetchRun) runSQL {
	row := runSQL{
		ID:               run.ID,
		Status:           string(run.Status),
		ModulesProcessed: jsonSQL[map[domain.Module]domain.ModuleResult]{V: run.ModulesProcessed},
		TotalItems:       run.TotalItems,
		Errors:           jsonSQL[[]string]{V: run.Errors},
		StartedAt:        utcPtr(run.StartedAt),
		CompletedAt:      utcPtr(run.CompletedAt),
		CreatedAt:        run.CreatedAt.UTC(),
	}
	if row.ModulesProcessed.V == nil {
		row.ModulesProcessed.V = map[domain.Module]domain.ModuleResult{}
	}
	if row.Errors.V == nil {
		row.Errors.V = []string{}
	}
	if row.Status == "" {
		row.Status = string(domain.RunPending)
	}
	return row
}

func (s *runSQL) toDomain() domain.FetchRun {
	run := domain.FetchRun{
		ID:               s.ID,
		Status:           domain.RunStatus(s.Status),
		ModulesProcessed: s.ModulesProcessed.V,
		TotalItems:       s.TotalItems,
		Errors:           s.Errors.V,
		StartedAt:        utcPtr(s.StartedAt),
		CompletedAt:      utcPtr(s.CompletedAt),
		CreatedAt:        s.CreatedAt.UTC(),
	}
	if run.ModulesProcessed == nil {
		run.ModulesProcessed = map[domain.Module]domain.ModuleResult{}
	}
	if run.Errors == nil {
		run.Errors = []string{}
	}
	return run
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
