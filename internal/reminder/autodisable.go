package reminder

import (
	"context"
	"fmt"
)

// AutoDisable flags users whose reminders keep firing into silence: an
// unbroken run of `sent` reminders (self and contact combined) with no
// check-in after the oldest counted entry. Flagged users get their master
// reminder switch turned off and must re-enable it themselves.
type AutoDisable struct {
	store     Store
	threshold int
}

func NewAutoDisable(store Store, threshold int) *AutoDisable {
	return &AutoDisable{store: store, threshold: threshold}
}

// StreakReached reports whether the ledger's recent sent reminders plus the
// pendingSent entries produced in the current run form a streak of at least
// the configured threshold.
func (a *AutoDisable) StreakReached(ctx context.Context, userID int64, pendingSent int) (bool, error) {
	if a.threshold <= 0 {
		return false, nil
	}

	need := a.threshold - pendingSent
	if need <= 0 {
		// This run alone reaches the threshold; nothing can have broken it.
		return true, nil
	}

	logs, err := a.store.RecentSentReminders(ctx, userID, need)
	if err != nil {
		return false, fmt.Errorf("load reminder streak: %w", err)
	}
	if len(logs) < need {
		return false, nil
	}

	// logs is newest-first; the oldest counted entry anchors the streak.
	oldest := logs[len(logs)-1].CreatedAt
	lastCheckIn, ok, err := a.store.LastCheckInInstant(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load last check-in: %w", err)
	}
	if ok && lastCheckIn.After(oldest) {
		return false, nil
	}
	return true, nil
}
