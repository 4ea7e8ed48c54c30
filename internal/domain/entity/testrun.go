package entity

import "time"

// Test dashboard records. Runs are executed by the worker binary; the API
// only creates a pending run and enqueues a job.

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
	RunStatusError   RunStatus = "error"
)

type CaseStatus string

const (
	CaseStatusPassed  CaseStatus = "passed"
	CaseStatusFailed  CaseStatus = "failed"
	CaseStatusError   CaseStatus = "error"
	CaseStatusSkipped CaseStatus = "skipped"
)

type TestRun struct {
	ID         string
	Name       string
	Status     RunStatus
	StartTime  time.Time
	EndTime    *time.Time
	Duration   float64 // seconds
	TotalTests int
	Passed     int
	Failed     int
	Errored    int
	Coverage   float64
	LogURL     string
}

// SuccessRate is the percentage of passed tests, 0 when the run is empty.
func (r *TestRun) SuccessRate() float64 {
	if r.TotalTests == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.TotalTests) * 100
}

type TestCase struct {
	ID         string
	RunID      string
	Name       string
	ClassName  string
	ModuleName string
	Status     CaseStatus
	Duration   float64
	ErrorText  string
}

type NotificationType string

const (
	NotifyTestFailure  NotificationType = "test_failure"
	NotifyBuildFailure NotificationType = "build_failure"
	NotifyCoverageDrop NotificationType = "coverage_drop"
)

type TestNotification struct {
	ID        string
	RunID     string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	IsSent    bool
}
