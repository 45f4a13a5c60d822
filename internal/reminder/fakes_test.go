package reminder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"glimmer/internal/model"
	"glimmer/internal/service"
	"glimmer/internal/timeutil"
)

// fakeStore keeps everything in memory and mimics the SQL accessors closely
// enough that a second Run sees the first run's ledger writes.
type fakeStore struct {
	users       []model.User
	checkIns    []model.CheckIn
	ledger      []model.NotificationLog
	disabled    []int64
	pageErr     error
	prefetchErr error
	bulkErr     error
	pageCalls   [][2]int
}

func (s *fakeStore) UsersPage(ctx context.Context, afterID int64, limit int) ([]model.User, error) {
	s.pageCalls = append(s.pageCalls, [2]int{int(afterID), limit})
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	// Mirrors the SQL: keyset on id, settings-enabled rows only.
	var page []model.User
	for i := range s.users {
		u := s.users[i]
		if u.ID <= afterID {
			continue
		}
		if u.ReminderSettings == nil || !u.ReminderSettings.Enabled {
			continue
		}
		page = append(page, u)
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func (s *fakeStore) LastCheckInByUser(ctx context.Context, userIDs []int64) (map[int64]time.Time, error) {
	if s.prefetchErr != nil {
		return nil, s.prefetchErr
	}
	result := make(map[int64]time.Time)
	for _, id := range userIDs {
		for _, ci := range s.checkIns {
			if ci.UserID != id {
				continue
			}
			day := timeutil.NormalizeToUTCDate(ci.Date)
			if cur, ok := result[id]; !ok || day.After(cur) {
				result[id] = day
			}
		}
	}
	return result, nil
}

func (s *fakeStore) TodaysSentStatus(ctx context.Context, userIDs []int64, todayStart time.Time) (map[int64]SentStatus, error) {
	if s.prefetchErr != nil {
		return nil, s.prefetchErr
	}
	result := make(map[int64]SentStatus)
	for _, id := range userIDs {
		result[id] = SentStatus{}
	}
	for _, entry := range s.ledger {
		status, ok := result[entry.UserID]
		if !ok || entry.Status != model.StatusSent || entry.CreatedAt.Before(todayStart) {
			continue
		}
		switch entry.Type {
		case model.ReminderTypeSelf:
			status.Self = true
		case model.ReminderTypeContact:
			status.Contact = true
		}
		result[entry.UserID] = status
	}
	return result, nil
}

func (s *fakeStore) RecentSentReminders(ctx context.Context, userID int64, limit int) ([]model.NotificationLog, error) {
	var logs []model.NotificationLog
	for _, entry := range s.ledger {
		if entry.UserID == userID && entry.Status == model.StatusSent {
			logs = append(logs, entry)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].CreatedAt.After(logs[j].CreatedAt) })
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (s *fakeStore) LastCheckInInstant(ctx context.Context, userID int64) (time.Time, bool, error) {
	var latest time.Time
	found := false
	for _, ci := range s.checkIns {
		if ci.UserID == userID && (!found || ci.CreatedAt.After(latest)) {
			latest = ci.CreatedAt
			found = true
		}
	}
	return latest, found, nil
}

func (s *fakeStore) InsertLogs(ctx context.Context, logs []model.NotificationLog) int {
	return insertWithFallback(ctx, logs,
		func(ctx context.Context, batch []model.NotificationLog) error {
			if s.bulkErr != nil {
				return s.bulkErr
			}
			s.ledger = append(s.ledger, batch...)
			return nil
		},
		func(ctx context.Context, entry *model.NotificationLog) error {
			s.ledger = append(s.ledger, *entry)
			return nil
		},
	)
}

func (s *fakeStore) DisableReminders(ctx context.Context, userIDs []int64) error {
	s.disabled = append(s.disabled, userIDs...)
	for i := range s.users {
		for _, id := range userIDs {
			if s.users[i].ID == id && s.users[i].ReminderSettings != nil {
				s.users[i].ReminderSettings.Enabled = false
			}
		}
	}
	return nil
}

// fakeMailer records outgoing mail and can fail or panic per recipient.
type fakeMailer struct {
	sent     []service.Email
	failFor  map[string]string
	panicFor string
}

func (m *fakeMailer) SendEmail(ctx context.Context, msg service.Email) service.SendResult {
	if msg.To == m.panicFor {
		panic(fmt.Sprintf("mailer blew up on %s", msg.To))
	}
	m.sent = append(m.sent, msg)
	if errMsg, ok := m.failFor[msg.To]; ok {
		return service.SendResult{Error: errMsg}
	}
	return service.SendResult{Success: true, MessageID: fmt.Sprintf("msg-%d", len(m.sent))}
}

var errBoom = errors.New("boom")
