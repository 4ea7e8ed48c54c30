package repository

import (
	"context"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

// RunStats summarizes dashboard history.
type RunStats struct {
	TotalRuns   int     `json:"total_runs"`
	PassedRuns  int     `json:"passed_runs"`
	FailedRuns  int     `json:"failed_runs"`
	TotalTests  int     `json:"total_tests"`
	PassedTests int     `json:"passed_tests"`
	AvgCoverage float64 `json:"avg_coverage"`
}

// TestRunRepository persists dashboard runs, their cases and notifications.
type TestRunRepository interface {
	CreateRun(ctx context.Context, r *entity.TestRun) error
	GetRun(ctx context.Context, id string) (*entity.TestRun, error)
	// ListRuns returns runs ordered by start time descending.
	ListRuns(ctx context.Context, limit int) ([]*entity.TestRun, error)
	// FinishRun records final status, totals, duration and log URL.
	FinishRun(ctx context.Context, r *entity.TestRun) error

	AddCases(ctx context.Context, cases []*entity.TestCase) error
	ListCases(ctx context.Context, runID string) ([]*entity.TestCase, error)

	CreateNotification(ctx context.Context, n *entity.TestNotification) error
	MarkNotificationSent(ctx context.Context, id string) error

	Stats(ctx context.Context) (*RunStats, error)
}
