package service

import (
	"context"
	"errors"
	"fmt"

	"glimmer/internal/model"
	"glimmer/internal/timeutil"

	"gorm.io/gorm"
)

var ErrAlreadyCheckedIn = errors.New("今天已经签到过了")

type CheckInService struct {
	db        *gorm.DB
	encourage *EncourageService
}

func NewCheckInService(db *gorm.DB, encourage *EncourageService) *CheckInService {
	return &CheckInService{db: db, encourage: encourage}
}

// Create records today's check-in, once per UTC calendar day.
func (s *CheckInService) Create(ctx context.Context, userID int64, emoji, mood string) (*model.CheckIn, error) {
	today := timeutil.TodayUTC()
	tomorrow := timeutil.AddDays(today, 1)

	var existing model.CheckIn
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, today, tomorrow).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query checkin: %w", err)
	}

	if emoji == "" {
		emoji = "🏃"
	}
	if mood == "" {
		mood = "positive"
	}

	var encouragement string
	if WantsEncouragement(mood) {
		encouragement = s.encourage.Generate(ctx, mood)
	}

	ci := model.CheckIn{
		UserID:        userID,
		Date:          today,
		Emoji:         emoji,
		Mood:          mood,
		Encouragement: encouragement,
	}
	if err := s.db.WithContext(ctx).Create(&ci).Error; err != nil {
		return nil, fmt.Errorf("insert checkin: %w", err)
	}
	return &ci, nil
}

// Today returns today's check-in if it exists.
func (s *CheckInService) Today(ctx context.Context, userID int64) (*model.CheckIn, error) {
	today := timeutil.TodayUTC()
	var ci model.CheckIn
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, today, timeutil.AddDays(today, 1)).
		First(&ci).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query today: %w", err)
	}
	return &ci, nil
}

// Recent lists the newest check-ins for the history view.
func (s *CheckInService) Recent(ctx context.Context, userID int64, limit int) ([]model.CheckIn, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var list []model.CheckIn
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return list, nil
}
