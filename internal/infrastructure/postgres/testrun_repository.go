package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
)

type TestRunRepository struct {
	pool *pgxpool.Pool
}

func NewTestRunRepository(pool *pgxpool.Pool) *TestRunRepository {
	return &TestRunRepository{pool: pool}
}

func (r *TestRunRepository) CreateRun(ctx context.Context, run *entity.TestRun) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO test_runs (name, status)
		VALUES ($1, $2)
		RETURNING id, start_time
	`, run.Name, string(run.Status))
	return row.Scan(&run.ID, &run.StartTime)
}

const runColumns = `id, name, status, start_time, end_time, duration, total_tests, passed_tests, failed_tests, error_tests, coverage, log_url`

func scanRun(row pgx.Row) (*entity.TestRun, error) {
	run := &entity.TestRun{}
	var status string
	err := row.Scan(&run.ID, &run.Name, &status, &run.StartTime, &run.EndTime, &run.Duration,
		&run.TotalTests, &run.Passed, &run.Failed, &run.Errored, &run.Coverage, &run.LogURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrTestRunNotFound
		}
		return nil, err
	}
	run.Status = entity.RunStatus(status)
	return run, nil
}

func (r *TestRunRepository) GetRun(ctx context.Context, id string) (*entity.TestRun, error) {
	return scanRun(r.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM test_runs WHERE id = $1`, id))
}

func (r *TestRunRepository) ListRuns(ctx context.Context, limit int) ([]*entity.TestRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+runColumns+` FROM test_runs ORDER BY start_time DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*entity.TestRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *TestRunRepository) FinishRun(ctx context.Context, run *entity.TestRun) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE test_runs
		SET status = $1, end_time = $2, duration = $3, total_tests = $4,
		    passed_tests = $5, failed_tests = $6, error_tests = $7, coverage = $8, log_url = $9
		WHERE id = $10
	`, string(run.Status), run.EndTime, run.Duration, run.TotalTests,
		run.Passed, run.Failed, run.Errored, run.Coverage, run.LogURL, run.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrTestRunNotFound
	}
	return nil
}

func (r *TestRunRepository) AddCases(ctx context.Context, cases []*entity.TestCase) error {
	for _, tc := range cases {
		row := r.pool.QueryRow(ctx, `
			INSERT INTO test_cases (run_id, name, class_name, module_name, status, duration, error_text)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, tc.RunID, tc.Name, tc.ClassName, tc.ModuleName, string(tc.Status), tc.Duration, tc.ErrorText)
		if err := row.Scan(&tc.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *TestRunRepository) ListCases(ctx context.Context, runID string) ([]*entity.TestCase, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, run_id, name, class_name, module_name, status, duration, error_text
		FROM test_cases WHERE run_id = $1 ORDER BY name
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*entity.TestCase
	for rows.Next() {
		tc := &entity.TestCase{}
		var status string
		if err := rows.Scan(&tc.ID, &tc.RunID, &tc.Name, &tc.ClassName, &tc.ModuleName,
			&status, &tc.Duration, &tc.ErrorText); err != nil {
			return nil, err
		}
		tc.Status = entity.CaseStatus(status)
		cases = append(cases, tc)
	}
	return cases, rows.Err()
}

func (r *TestRunRepository) CreateNotification(ctx context.Context, n *entity.TestNotification) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO test_notifications (run_id, notification_type, message, is_sent)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, n.RunID, string(n.Type), n.Message, n.IsSent)
	return row.Scan(&n.ID, &n.CreatedAt)
}

func (r *TestRunRepository) MarkNotificationSent(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE test_notifications SET is_sent = TRUE WHERE id = $1`, id)
	return err
}

func (r *TestRunRepository) Stats(ctx context.Context) (*repository.RunStats, error) {
	s := &repository.RunStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'passed'),
		       COUNT(*) FILTER (WHERE status IN ('failed', 'error')),
		       COALESCE(SUM(total_tests), 0),
		       COALESCE(SUM(passed_tests), 0),
		       COALESCE(AVG(coverage) FILTER (WHERE coverage > 0), 0)
		FROM test_runs
	`).Scan(&s.TotalRuns, &s.PassedRuns, &s.FailedRuns, &s.TotalTests, &s.PassedTests, &s.AvgCoverage)
	if err != nil {
		return nil, err
	}
	return s, nil
}

var _ repository.TestRunRepository = (*TestRunRepository)(nil)
