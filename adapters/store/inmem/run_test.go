package inmem

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

func TestRunRepository_CreateAndGet(t *testing.T) {
	repo := NewRunRepository()
	ctx := context.Background()

	run := &model.Run{Mode: "single_target", IP: "203.0.113.7", StartedAt: time.Now()}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("Create did not assign an ID")
	}

	got, err := repo.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.IP != "203.0.113.7" {
		t.Errorf("IP = %q", got.IP)
	}

	// stored copy must not alias the caller's struct
	run.IP = "changed"
	got, _ = repo.Get(ctx, run.ID)
	if got.IP != "203.0.113.7" {
		t.Errorf("stored run aliased caller value: %q", got.IP)
	}
}

func TestRunRepository_GetNotFound(t *testing.T) {
	repo := NewRunRepository()
	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, model.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_ListAndPrune(t *testing.T) {
	repo := NewRunRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		run := &model.Run{ID: fmt.Sprintf("run-%d", i), StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	runs, err := repo.List(ctx, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 3 || runs[0].ID != "run-3" {
		t.Fatalf("List = %d rows, first %s", len(runs), runs[0].ID)
	}

	if err := repo.Prune(ctx, 1); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	runs, _ = repo.List(ctx, 0)
	if len(runs) != 1 || runs[0].ID != "run-3" {
		t.Fatalf("after prune: %d rows", len(runs))
	}
}
