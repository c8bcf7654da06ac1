package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqliteadapter "github.com/Gwatamalou/DocGenerator/internal/adapters/sqlite"
	"github.com/Gwatamalou/DocGenerator/internal/domain"
)

func openRepo(t *testing.T) *sqliteadapter.Repository {
	t.Helper()
	repo, err := sqliteadapter.New(filepath.Join(t.TempDir(), "attempts.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRecordAndListAttempts(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, a := range []*domain.AttemptRecord{
		{Description: "first", SourceKind: domain.SourceManual, PairCount: 2, Outcome: domain.OutcomeGenerated},
		{Description: "second", SourceKind: domain.SourceSpreadsheet, Outcome: domain.OutcomeFailed, Message: "Invalid coordinates"},
		{Description: "third", SourceKind: domain.SourceManual, PairCount: 5, Outcome: domain.OutcomeGenerated},
	} {
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.RecordAttempt(ctx, a); err != nil {
			t.Fatalf("record %q: %v", a.Description, err)
		}
		if a.ID == 0 {
			t.Fatalf("record %q: id not assigned", a.Description)
		}
	}

	list, err := repo.RecentAttempts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("attempts = %d, want 3", len(list))
	}
	// Newest first.
	if list[0].Description != "third" || list[2].Description != "first" {
		t.Fatalf("order = [%s %s %s]", list[0].Description, list[1].Description, list[2].Description)
	}
	if list[1].Outcome != domain.OutcomeFailed || list[1].Message != "Invalid coordinates" {
		t.Fatalf("failed attempt round-trip = %+v", list[1])
	}
}

func TestRecentAttemptsHonorsLimit(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		a := &domain.AttemptRecord{
			SourceKind: domain.SourceManual,
			Outcome:    domain.OutcomeGenerated,
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := repo.RecordAttempt(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.RecentAttempts(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("attempts = %d, want 2", len(list))
	}
}

func TestRecentAttemptsEmpty(t *testing.T) {
	list, err := openRepo(t).RecentAttempts(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("attempts = %v, want none", list)
	}
}
