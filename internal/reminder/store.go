package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glimmer/internal/logger"
	"glimmer/internal/model"
	"glimmer/internal/timeutil"

	"gorm.io/gorm"
)

// Store is everything the batch run needs from persistence.
type Store interface {
	// UsersPage returns the next page of users with id > afterID whose
	// reminder settings are enabled, with settings and enabled emergency
	// contacts attached. Keyset instead of offset: rows disabled mid-run
	// drop out of the result set and would shift offsets past users.
	UsersPage(ctx context.Context, afterID int64, limit int) ([]model.User, error)
	// LastCheckInByUser maps each user to their most recent check-in day,
	// normalized; users with no check-in are absent from the map.
	LastCheckInByUser(ctx context.Context, userIDs []int64) (map[int64]time.Time, error)
	// TodaysSentStatus reports per-channel `sent` entries since todayStart,
	// with an all-false entry for every requested id.
	TodaysSentStatus(ctx context.Context, userIDs []int64, todayStart time.Time) (map[int64]SentStatus, error)
	// RecentSentReminders returns the newest `sent` ledger rows, newest first.
	RecentSentReminders(ctx context.Context, userID int64, limit int) ([]model.NotificationLog, error)
	// LastCheckInInstant returns the raw creation instant of the newest
	// check-in; ok is false when the user never checked in.
	LastCheckInInstant(ctx context.Context, userID int64) (time.Time, bool, error)
	// InsertLogs appends ledger rows, bulk first then row-by-row on bulk
	// failure. Returns how many rows could not be written.
	InsertLogs(ctx context.Context, logs []model.NotificationLog) int
	// DisableReminders turns off the master switch for the given users.
	DisableReminders(ctx context.Context, userIDs []int64) error
}

type gormStore struct{ db *gorm.DB }

func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) UsersPage(ctx context.Context, afterID int64, limit int) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Joins("JOIN reminder_settings rs ON rs.user_id = users.id AND rs.enabled = ?", true).
		Preload("ReminderSettings").
		Preload("EmergencyContacts", "enabled = ?", true).
		Where("users.id > ?", afterID).
		Order("users.id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("query users page: %w", err)
	}
	return users, nil
}

func (s *gormStore) LastCheckInByUser(ctx context.Context, userIDs []int64) (map[int64]time.Time, error) {
	result := make(map[int64]time.Time, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	// One range query ordered by user then date descending; the first row
	// seen per user is their latest check-in. Avoids N+1.
	var rows []struct {
		UserID int64
		Date   time.Time
	}
	err := s.db.WithContext(ctx).
		Model(&model.CheckIn{}).
		Select("user_id", "date").
		Where("user_id IN ?", userIDs).
		Order("user_id ASC, date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query last check-ins: %w", err)
	}

	for _, row := range rows {
		if _, seen := result[row.UserID]; !seen {
			result[row.UserID] = timeutil.NormalizeToUTCDate(row.Date)
		}
	}
	return result, nil
}

func (s *gormStore) TodaysSentStatus(ctx context.Context, userIDs []int64, todayStart time.Time) (map[int64]SentStatus, error) {
	result := make(map[int64]SentStatus, len(userIDs))
	for _, id := range userIDs {
		result[id] = SentStatus{}
	}
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		UserID int64
		Type   string
	}
	err := s.db.WithContext(ctx).
		Model(&model.NotificationLog{}).
		Select("user_id", "type").
		Where("user_id IN ? AND created_at >= ? AND status = ?", userIDs, todayStart, model.StatusSent).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query today's reminders: %w", err)
	}

	for _, row := range rows {
		status := result[row.UserID]
		switch row.Type {
		case model.ReminderTypeSelf:
			status.Self = true
		case model.ReminderTypeContact:
			status.Contact = true
		}
		result[row.UserID] = status
	}
	return result, nil
}

func (s *gormStore) RecentSentReminders(ctx context.Context, userID int64, limit int) ([]model.NotificationLog, error) {
	var logs []model.NotificationLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StatusSent).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("query recent reminders: %w", err)
	}
	return logs, nil
}

func (s *gormStore) LastCheckInInstant(ctx context.Context, userID int64) (time.Time, bool, error) {
	var ci model.CheckIn
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&ci).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query last check-in instant: %w", err)
	}
	return ci.CreatedAt, true, nil
}

func (s *gormStore) InsertLogs(ctx context.Context, logs []model.NotificationLog) int {
	return insertWithFallback(ctx, logs,
		func(ctx context.Context, batch []model.NotificationLog) error {
			return s.db.WithContext(ctx).Create(&batch).Error
		},
		func(ctx context.Context, entry *model.NotificationLog) error {
			return s.db.WithContext(ctx).Create(entry).Error
		},
	)
}

// insertWithFallback is the two-tier write strategy: try one bulk insert, and
// on failure retry every row individually so a single bad row does not lose
// the page. Returns the number of rows that still failed.
func insertWithFallback(
	ctx context.Context,
	logs []model.NotificationLog,
	bulk func(context.Context, []model.NotificationLog) error,
	single func(context.Context, *model.NotificationLog) error,
) int {
	if len(logs) == 0 {
		return 0
	}
	err := bulk(ctx, logs)
	if err == nil {
		return 0
	}
	logger.Warn("bulk log insert failed, retrying per row", "count", len(logs), "err", err)

	failed := 0
	for i := range logs {
		if err := single(ctx, &logs[i]); err != nil {
			failed++
			logger.Error("log insert failed", "user_id", logs[i].UserID, "type", logs[i].Type, "err", err)
		}
	}
	return failed
}

func (s *gormStore) DisableReminders(ctx context.Context, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&model.ReminderSettings{}).
		Where("user_id IN ?", userIDs).
		Update("enabled", false).Error
}
