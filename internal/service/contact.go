package service

import (
	"context"
	"errors"
	"fmt"

	"glimmer/internal/model"

	"gorm.io/gorm"
)

const maxContacts = 3

var (
	ErrTooManyContacts = errors.New("最多只能添加3个紧急联系人")
	ErrContactNotFound = errors.New("联系人不存在")
)

type ContactService struct{ db *gorm.DB }

func NewContactService(db *gorm.DB) *ContactService { return &ContactService{db: db} }

func (s *ContactService) List(ctx context.Context, userID int64) ([]model.EmergencyContact, error) {
	var list []model.EmergencyContact
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	return list, nil
}

func (s *ContactService) Add(ctx context.Context, userID int64, name, email string) (*model.EmergencyContact, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.EmergencyContact{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	if count >= maxContacts {
		return nil, ErrTooManyContacts
	}

	c := model.EmergencyContact{UserID: userID, Name: name, Email: normalizeEmail(email), Enabled: true}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return &c, nil
}

// SetEnabled toggles a contact, ownership-checked.
func (s *ContactService) SetEnabled(ctx context.Context, userID, contactID int64, enabled bool) (*model.EmergencyContact, error) {
	c, err := s.owned(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(c).Update("enabled", enabled).Error; err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, contactID int64) error {
	c, err := s.owned(ctx, userID, contactID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(c).Error
}

func (s *ContactService) owned(ctx context.Context, userID, contactID int64) (*model.EmergencyContact, error) {
	var c model.EmergencyContact
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", contactID, userID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query contact: %w", err)
	}
	return &c, nil
}
