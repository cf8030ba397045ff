package ventures

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testVenture(id, email string, createdAt time.Time) Venture {
	return Venture{
		VentureID: id,
		ClientID:  "CLIENT_1_abc",
		BasicInfo: BasicInfo{
			BusinessName: "קפה ברחוב",
			Email:        email,
		},
		Status:    StatusSubmitted,
		CreatedAt: createdAt,
	}
}

func TestMemoryRepoCreateAndGet(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	v := testVenture("VEN_1_a", "founder@example.com", time.Time{})
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByVentureID(ctx, "VEN_1_a")
	if err != nil {
		t.Fatalf("GetByVentureID: %v", err)
	}
	if got.BasicInfo.Email != "founder@example.com" {
		t.Fatalf("unexpected email %q", got.BasicInfo.Email)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be filled in")
	}

	if _, err := repo.GetByVentureID(ctx, "VEN_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoUpdateResults(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, testVenture("VEN_1_a", "a@example.com", time.Time{})); err != nil {
		t.Fatalf("Create: %v", err)
	}

	results := []AIResult{{Engine: "chatgpt", Analysis: "ניתוח", Score: 70, MaxScore: 105}}
	scoring := Scoring{Total: 70, MaxPossible: 105}
	if err := repo.UpdateResults(ctx, "VEN_1_a", results, scoring, StatusAnalyzed); err != nil {
		t.Fatalf("UpdateResults: %v", err)
	}

	got, err := repo.GetByVentureID(ctx, "VEN_1_a")
	if err != nil {
		t.Fatalf("GetByVentureID: %v", err)
	}
	if got.Status != StatusAnalyzed {
		t.Fatalf("expected status analyzed, got %q", got.Status)
	}
	if len(got.AIResults) != 1 || got.AIResults[0].Score != 70 {
		t.Fatalf("unexpected results %+v", got.AIResults)
	}
	if got.Scoring.Total != 70 {
		t.Fatalf("unexpected scoring %+v", got.Scoring)
	}

	if err := repo.UpdateResults(ctx, "VEN_missing", nil, Scoring{}, StatusAnalyzed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListByEmailNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		v := testVenture("VEN_1_"+string(rune('a'+i)), "shared@example.com", base.Add(time.Duration(i)*time.Hour))
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Create(ctx, testVenture("VEN_other", "other@example.com", base)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := repo.ListByEmail(ctx, "shared@example.com", 2)
	if err != nil {
		t.Fatalf("ListByEmail: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 ventures, got %d", len(list))
	}
	if !list[0].CreatedAt.After(list[1].CreatedAt) {
		t.Fatal("expected newest first ordering")
	}
	if list[0].VentureID != "VEN_1_c" {
		t.Fatalf("expected newest venture first, got %q", list[0].VentureID)
	}
}

func TestMemoryRepoHonorsCancelledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, testVenture("VEN_1_a", "a@example.com", time.Time{})); err == nil {
		t.Fatal("expected context error")
	}
}
