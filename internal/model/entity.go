package model

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:191" json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	ReminderSettings  *ReminderSettings  `json:"reminder_settings,omitempty"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts,omitempty"`
}

// CheckIn 每日签到，(user_id, date) 唯一，date 统一存 UTC 00:00:00
type CheckIn struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"index:uk_user_date,unique" json:"user_id"`
	Date          time.Time `gorm:"index:uk_user_date,unique" json:"date"`
	Emoji         string    `json:"emoji"`
	Mood          string    `json:"mood"`
	Encouragement string    `json:"encouragement,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReminderSettings struct {
	ID                     int64 `gorm:"primaryKey" json:"id"`
	UserID                 int64 `gorm:"uniqueIndex" json:"user_id"`
	Enabled                bool  `json:"enabled"`
	SelfReminderEnabled    bool  `json:"self_reminder_enabled"`
	SelfReminderDays       int   `gorm:"default:3" json:"self_reminder_days"`
	ContactReminderEnabled bool  `json:"contact_reminder_enabled"`
	ContactReminderDays    int   `gorm:"default:7" json:"contact_reminder_days"`
}

type EmergencyContact struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index" json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// Reminder channels and delivery statuses stored in notification_logs.
const (
	ReminderTypeSelf    = "self"
	ReminderTypeContact = "contact"

	StatusSent   = "sent"
	StatusFailed = "failed"
)

// NotificationLog 提醒发送台账，只追加，不更新不删除
type NotificationLog struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index:idx_log_user_created" json:"user_id"`
	Type      string    `gorm:"size:16" json:"type"`
	Status    string    `gorm:"size:16" json:"status"`
	Content   string    `json:"content"`
	Recipient string    `json:"recipient"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_log_user_created" json:"created_at"`
}

type EmailVerificationCode struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;size:191" json:"email"`
	Code      string    `gorm:"size:8" json:"-"`
	Used      bool      `json:"used"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string                  { return "users" }
func (CheckIn) TableName() string               { return "check_ins" }
func (ReminderSettings) TableName() string      { return "reminder_settings" }
func (EmergencyContact) TableName() string      { return "emergency_contacts" }
func (NotificationLog) TableName() string       { return "notification_logs" }
func (EmailVerificationCode) TableName() string { return "email_verification_codes" }
