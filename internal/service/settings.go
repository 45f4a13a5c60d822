package service

import (
	"context"
	"errors"
	"fmt"

	"glimmer/internal/model"

	"gorm.io/gorm"
)

const (
	minReminderDays = 1
	maxReminderDays = 30
)

type SettingsService struct{ db *gorm.DB }

func NewSettingsService(db *gorm.DB) *SettingsService { return &SettingsService{db: db} }

// Get returns the user's reminder settings, nil when never configured.
func (s *SettingsService) Get(ctx context.Context, userID int64) (*model.ReminderSettings, error) {
	var rs model.ReminderSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	return &rs, nil
}

// Upsert saves reminder settings, clamping day thresholds to [1,30].
func (s *SettingsService) Upsert(ctx context.Context, userID int64, req model.ReminderSettingsRequest) (*model.ReminderSettings, error) {
	values := map[string]interface{}{
		"enabled":                  req.Enabled,
		"self_reminder_enabled":    req.SelfReminderEnabled,
		"self_reminder_days":       clampDays(req.SelfReminderDays),
		"contact_reminder_enabled": req.ContactReminderEnabled,
		"contact_reminder_days":    clampDays(req.ContactReminderDays),
	}

	var rs model.ReminderSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rs = model.ReminderSettings{
			UserID:                 userID,
			Enabled:                req.Enabled,
			SelfReminderEnabled:    req.SelfReminderEnabled,
			SelfReminderDays:       clampDays(req.SelfReminderDays),
			ContactReminderEnabled: req.ContactReminderEnabled,
			ContactReminderDays:    clampDays(req.ContactReminderDays),
		}
		if err := s.db.WithContext(ctx).Create(&rs).Error; err != nil {
			return nil, fmt.Errorf("create settings: %w", err)
		}
		return &rs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&rs).Updates(values).Error; err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &rs, nil
}

func clampDays(n int) int {
	if n < minReminderDays {
		return minReminderDays
	}
	if n > maxReminderDays {
		return maxReminderDays
	}
	return n
}
