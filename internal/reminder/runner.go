package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"glimmer/internal/logger"
	"glimmer/internal/model"
	"glimmer/internal/service"
	"glimmer/internal/timeutil"

	"github.com/google/uuid"
)

const DefaultPageSize = 100

// Config tunes one batch run.
type Config struct {
	PageSize         int
	AutoDisableAfter int // consecutive sent reminders before disabling; 7 by default
}

// Runner is the sequential batch orchestrator: it pages through users with
// reminders enabled, evaluates both channels, dispatches mail, and persists
// ledger rows and auto-disable flags per page. One instance at a time is the
// scheduler's responsibility; re-running within a day is idempotent thanks to
// same-day dedup.
type Runner struct {
	store      Store
	dispatcher *Dispatcher
	supervisor *AutoDisable
	pageSize   int
	now        func() time.Time
}

func NewRunner(store Store, mailer service.Mailer, cfg Config) *Runner {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	r := &Runner{
		store:      store,
		supervisor: NewAutoDisable(store, cfg.AutoDisableAfter),
		pageSize:   pageSize,
		now:        time.Now,
	}
	// The dispatcher reads the clock through the runner so ledger timestamps
	// and the run's "today" always agree.
	r.dispatcher = NewDispatcher(mailer, func() time.Time { return r.now() })
	return r
}

// Run executes one full inactivity sweep. Only failing to read a page of
// users aborts the run; everything else is logged and skipped.
func (r *Runner) Run(ctx context.Context) error {
	log := logger.WithRun(uuid.NewString())
	today := timeutil.NormalizeToUTCDate(r.now())
	log.Info("reminder run started", "today", today.Format("2006-01-02"))

	// Keyset paging on the user id: mid-run auto-disables shrink the
	// filtered result set, so offsets would silently skip users.
	var afterID int64
	pages, dispatched := 0, 0
	for {
		users, err := r.store.UsersPage(ctx, afterID, r.pageSize)
		if err != nil {
			return fmt.Errorf("load user page after id %d: %w", afterID, err)
		}
		if len(users) == 0 {
			break
		}

		dispatched += r.processPage(ctx, log, today, users)
		pages++

		if len(users) < r.pageSize {
			break
		}
		afterID = users[len(users)-1].ID
	}

	log.Info("reminder run finished", "pages", pages, "logs", dispatched)
	return nil
}

// processPage runs evaluation, dispatch and persistence for one page and
// returns how many ledger rows it produced.
func (r *Runner) processPage(ctx context.Context, log *slog.Logger, today time.Time, users []model.User) int {
	userIDs := make([]int64, len(users))
	for i := range users {
		userIDs[i] = users[i].ID
	}

	lastMap, err := r.store.LastCheckInByUser(ctx, userIDs)
	if err != nil {
		log.Error("page prefetch failed, skipping page", "err", err)
		return 0
	}
	sentMap, err := r.store.TodaysSentStatus(ctx, userIDs, today)
	if err != nil {
		log.Error("page prefetch failed, skipping page", "err", err)
		return 0
	}

	var entries []model.NotificationLog
	var disable []int64

	for i := range users {
		u := &users[i]
		userEntries, err := r.processUser(ctx, u, lastMap, sentMap, today)
		if err != nil {
			log.Error("user processing failed", "user_id", u.ID, "err", err)
			continue
		}
		entries = append(entries, userEntries...)

		sentNow := 0
		for _, e := range userEntries {
			if e.Status == model.StatusSent {
				sentNow++
			}
		}
		if sentNow == 0 {
			continue
		}

		reached, err := r.supervisor.StreakReached(ctx, u.ID, sentNow)
		if err != nil {
			log.Error("streak check failed", "user_id", u.ID, "err", err)
			continue
		}
		if reached {
			log.Warn("reminder streak reached, disabling reminders", "user_id", u.ID)
			disable = append(disable, u.ID)
		}
	}

	if failed := r.store.InsertLogs(ctx, entries); failed > 0 {
		log.Error("ledger writes dropped", "failed", failed)
	}
	if len(disable) > 0 {
		if err := r.store.DisableReminders(ctx, disable); err != nil {
			log.Error("auto-disable update failed", "users", len(disable), "err", err)
		}
	}
	return len(entries)
}

// processUser evaluates and dispatches one user. A panic from bad data is
// converted into an error so the rest of the page keeps going.
func (r *Runner) processUser(ctx context.Context, u *model.User, lastMap map[int64]time.Time, sentMap map[int64]SentStatus, today time.Time) (entries []model.NotificationLog, err error) {
	defer func() {
		if p := recover(); p != nil {
			entries = nil
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	var lastDay *time.Time
	if day, ok := lastMap[u.ID]; ok {
		lastDay = &day
	}

	for _, intent := range Evaluate(u, lastDay, sentMap[u.ID], today) {
		switch intent.Channel {
		case model.ReminderTypeSelf:
			entries = append(entries, r.dispatcher.DispatchSelf(ctx, u, intent.DaysSince))
		case model.ReminderTypeContact:
			// 每个启用的联系人独立发送，互不影响
			for i := range u.EmergencyContacts {
				c := &u.EmergencyContacts[i]
				if !c.Enabled {
					continue
				}
				entries = append(entries, r.dispatcher.DispatchContact(ctx, u, c, intent.DaysSince))
			}
		}
	}
	return entries, nil
}
