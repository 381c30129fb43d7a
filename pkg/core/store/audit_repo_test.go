package store

import (
	"context"
	"testing"

	"declaration_audit/pkg/core/report"
)

func TestMemoryAuditRepoRoundTrip(t *testing.T) {
	repo := NewMemoryAuditRepo()
	ctx := context.Background()

	if _, err := repo.Load(ctx, "42"); err == nil {
		t.Error("empty repository returned a report")
	}

	rep := report.New("Петренко Петро Петрович")
	rep.SetPeriod(2019, 2021)
	if err := repo.Save(ctx, "42", rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := repo.Load(ctx, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.RunID != rep.RunID || loaded.FromYear != 2019 {
		t.Errorf("loaded = %+v", loaded)
	}

	// A later run replaces the stored report.
	second := report.New("Петренко Петро Петрович")
	if err := repo.Save(ctx, "42", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, _ = repo.Load(ctx, "42")
	if loaded.RunID != second.RunID {
		t.Error("stale report returned after overwrite")
	}
}

func TestPostgresRepoRequiresPool(t *testing.T) {
	repo := NewAuditRepo()
	if err := repo.Save(context.Background(), "42", report.New("x")); err == nil {
		t.Error("save without a pool must fail")
	}
	if _, err := repo.Load(context.Background(), "42"); err == nil {
		t.Error("load without a pool must fail")
	}
}
