package reminder

import (
	"context"
	"testing"
	"time"

	"glimmer/internal/model"
)

func sentEntry(userID int64, at time.Time) model.NotificationLog {
	return model.NotificationLog{
		UserID:    userID,
		Type:      model.ReminderTypeSelf,
		Status:    model.StatusSent,
		CreatedAt: at,
	}
}

func TestStreakReachedAtThreshold(t *testing.T) {
	base := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	// 6 consecutive sent reminders already in the ledger.
	for i := 0; i < 6; i++ {
		store.ledger = append(store.ledger, sentEntry(1, base.AddDate(0, 0, i)))
	}

	sup := NewAutoDisable(store, 7)
	reached, err := sup.StreakReached(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatal("6 ledger sends + 1 this run must reach a threshold of 7")
	}
}

func TestStreakBrokenByLaterCheckIn(t *testing.T) {
	base := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	for i := 0; i < 6; i++ {
		store.ledger = append(store.ledger, sentEntry(1, base.AddDate(0, 0, i)))
	}
	// Check-in after the oldest counted reminder breaks the streak.
	store.checkIns = append(store.checkIns, model.CheckIn{
		UserID:    1,
		Date:      base.AddDate(0, 0, 1),
		CreatedAt: base.AddDate(0, 0, 1).Add(2 * time.Hour),
	})

	sup := NewAutoDisable(store, 7)
	reached, err := sup.StreakReached(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reached {
		t.Fatal("a check-in inside the window must break the streak")
	}
}

func TestStreakCheckInBeforeWindowDoesNotBreak(t *testing.T) {
	base := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	for i := 0; i < 6; i++ {
		store.ledger = append(store.ledger, sentEntry(1, base.AddDate(0, 0, i)))
	}
	// Check-in older than the whole streak is irrelevant.
	store.checkIns = append(store.checkIns, model.CheckIn{
		UserID:    1,
		Date:      base.AddDate(0, 0, -3),
		CreatedAt: base.AddDate(0, 0, -3),
	})

	sup := NewAutoDisable(store, 7)
	reached, err := sup.StreakReached(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatal("check-in before the counted window must not break the streak")
	}
}

func TestStreakTooShort(t *testing.T) {
	base := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	for i := 0; i < 4; i++ {
		store.ledger = append(store.ledger, sentEntry(1, base.AddDate(0, 0, i)))
	}

	sup := NewAutoDisable(store, 7)
	reached, err := sup.StreakReached(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reached {
		t.Fatal("4 ledger sends + 1 this run is below a threshold of 7")
	}
}

func TestStreakPendingAloneReachesThreshold(t *testing.T) {
	store := &fakeStore{}
	sup := NewAutoDisable(store, 2)
	reached, err := sup.StreakReached(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatal("this run's sends alone reaching the threshold must flag")
	}
}

func TestStreakDisabledThreshold(t *testing.T) {
	store := &fakeStore{}
	sup := NewAutoDisable(store, 0)
	reached, err := sup.StreakReached(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reached {
		t.Fatal("threshold 0 disables the supervisor")
	}
}

func TestStreakCountsFailedEntriesNever(t *testing.T) {
	base := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	for i := 0; i < 6; i++ {
		entry := sentEntry(1, base.AddDate(0, 0, i))
		entry.Status = model.StatusFailed
		store.ledger = append(store.ledger, entry)
	}

	sup := NewAutoDisable(store, 7)
	reached, err := sup.StreakReached(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reached {
		t.Fatal("failed deliveries must not count toward the streak")
	}
}
