package reminder

import (
	"context"
	"testing"

	"glimmer/internal/model"
)

func TestInsertWithFallbackBulkSucceeds(t *testing.T) {
	logs := []model.NotificationLog{{UserID: 1}, {UserID: 2}, {UserID: 3}}
	bulkCalls, singleCalls := 0, 0

	failed := insertWithFallback(context.Background(), logs,
		func(ctx context.Context, batch []model.NotificationLog) error {
			bulkCalls++
			return nil
		},
		func(ctx context.Context, entry *model.NotificationLog) error {
			singleCalls++
			return nil
		},
	)
	if failed != 0 {
		t.Fatalf("want 0 failures, got %d", failed)
	}
	if bulkCalls != 1 || singleCalls != 0 {
		t.Fatalf("bulk path only: bulk=%d single=%d", bulkCalls, singleCalls)
	}
}

func TestInsertWithFallbackDegradesToPerRow(t *testing.T) {
	logs := []model.NotificationLog{{UserID: 1}, {UserID: 2}, {UserID: 3}}
	var singles []int64

	failed := insertWithFallback(context.Background(), logs,
		func(ctx context.Context, batch []model.NotificationLog) error {
			return errBoom
		},
		func(ctx context.Context, entry *model.NotificationLog) error {
			singles = append(singles, entry.UserID)
			if entry.UserID == 2 {
				return errBoom
			}
			return nil
		},
	)
	// Every row gets its own attempt; one bad row costs only itself.
	if len(singles) != 3 {
		t.Fatalf("want 3 individual attempts, got %v", singles)
	}
	if failed != 1 {
		t.Fatalf("want 1 failure, got %d", failed)
	}
}

func TestInsertWithFallbackEmptyBatch(t *testing.T) {
	failed := insertWithFallback(context.Background(), nil,
		func(ctx context.Context, batch []model.NotificationLog) error {
			t.Fatal("no insert should happen for an empty batch")
			return nil
		},
		func(ctx context.Context, entry *model.NotificationLog) error {
			t.Fatal("no insert should happen for an empty batch")
			return nil
		},
	)
	if failed != 0 {
		t.Fatalf("want 0 failures, got %d", failed)
	}
}
