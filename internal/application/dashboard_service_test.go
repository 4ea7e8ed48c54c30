package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

func newRunRepo() (*mockTestRunRepo, *map[string]*entity.TestRun) {
	store := map[string]*entity.TestRun{}
	repo := &mockTestRunRepo{
		CreateRunFn: func(ctx context.Context, r *entity.TestRun) error {
			r.ID = "run-1"
			store[r.ID] = r
			return nil
		},
		GetRunFn: func(ctx context.Context, id string) (*entity.TestRun, error) {
			r, ok := store[id]
			if !ok {
				return nil, entity.ErrTestRunNotFound
			}
			return r, nil
		},
		FinishRunFn: func(ctx context.Context, r *entity.TestRun) error {
			store[r.ID] = r
			return nil
		},
		AddCasesFn: func(ctx context.Context, cases []*entity.TestCase) error { return nil },
		CreateNotificationFn: func(ctx context.Context, n *entity.TestNotification) error {
			n.ID = "notif-1"
			return nil
		},
		MarkNotificationSentFn: func(ctx context.Context, id string) error { return nil },
	}
	return repo, &store
}

func TestSubmitRunQueuesJob(t *testing.T) {
	repo, _ := newRunRepo()
	pub := &mockPublisher{}
	svc := NewDashboardService(repo, pub, NewAccessPolicy(), testLogger())

	run, err := svc.SubmitRun(context.Background(), staff(), "nightly")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if run.Status != entity.RunStatusRunning {
		t.Fatalf("status = %s, want running", run.Status)
	}
	if len(pub.Published) != 1 {
		t.Fatalf("published %d jobs, want 1", len(pub.Published))
	}
	job, ok := pub.Published[0].(RunJob)
	if !ok || job.RunID != run.ID {
		t.Fatalf("published job = %#v, want RunJob for %s", pub.Published[0], run.ID)
	}
}

func TestSubmitRunCustomerDenied(t *testing.T) {
	repo, _ := newRunRepo()
	svc := NewDashboardService(repo, &mockPublisher{}, NewAccessPolicy(), testLogger())

	if _, err := svc.SubmitRun(context.Background(), customer(), "nightly"); !errors.Is(err, entity.ErrNotPermitted) {
		t.Fatalf("err = %v, want ErrNotPermitted", err)
	}
}

func TestSubmitRunPublishFailureMarksError(t *testing.T) {
	repo, store := newRunRepo()
	pub := &mockPublisher{
		PublishJSONFn: func(ctx context.Context, body any) error {
			return errors.New("broker down")
		},
	}
	svc := NewDashboardService(repo, pub, NewAccessPolicy(), testLogger())

	if _, err := svc.SubmitRun(context.Background(), staff(), "nightly"); err == nil {
		t.Fatal("expected error when enqueue fails")
	}
	run := (*store)["run-1"]
	if run == nil || run.Status != entity.RunStatusError {
		t.Fatalf("unqueued run status = %v, want error", run)
	}
}

func TestExecuteRunFinishesAndNotifies(t *testing.T) {
	repo, store := newRunRepo()
	var addedCases []*entity.TestCase
	repo.AddCasesFn = func(ctx context.Context, cases []*entity.TestCase) error {
		addedCases = cases
		return nil
	}
	notified := false
	repo.CreateNotificationFn = func(ctx context.Context, n *entity.TestNotification) error {
		n.ID = "notif-1"
		notified = true
		return nil
	}
	(*store)["run-1"] = &entity.TestRun{
		ID:        "run-1",
		Name:      "nightly",
		Status:    entity.RunStatusRunning,
		StartTime: time.Now(),
	}

	mail := &mockMailer{}
	svc := NewDashboardService(repo, &mockPublisher{}, NewAccessPolicy(), testLogger()).
		WithArtifacts(nil, "", mail, "qa@example.com")

	if err := svc.ExecuteRun(context.Background(), RunJob{RunID: "run-1", Name: "nightly"}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	run := (*store)["run-1"]
	if run.Status == entity.RunStatusRunning {
		t.Fatal("run still marked running after execution")
	}
	if run.EndTime == nil {
		t.Fatal("end time not set")
	}
	if run.TotalTests == 0 || len(addedCases) != run.TotalTests {
		t.Fatalf("cases persisted = %d, totals = %d", len(addedCases), run.TotalTests)
	}
	if run.Passed+run.Failed+run.Errored > run.TotalTests {
		t.Fatalf("case totals inconsistent: %+v", run)
	}
	if run.Status != entity.RunStatusPassed {
		if !notified {
			t.Fatal("failing run raised no notification")
		}
		if len(mail.Sent) == 0 {
			t.Fatal("failing run sent no alert mail")
		}
	}
}

func TestSuccessRate(t *testing.T) {
	r := &entity.TestRun{TotalTests: 8, Passed: 6}
	if got := r.SuccessRate(); got != 75 {
		t.Fatalf("success rate = %v, want 75", got)
	}
	empty := &entity.TestRun{}
	if got := empty.SuccessRate(); got != 0 {
		t.Fatalf("empty run success rate = %v, want 0", got)
	}
}
