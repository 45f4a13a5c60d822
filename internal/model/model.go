package model

type RegisterRequest struct {
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	ConfirmPassword  string `json:"confirm_password" binding:"required"`
	Name             string `json:"name"`
	VerificationCode string `json:"verification_code" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UserProfile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type SendCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	VerificationCode string `json:"verification_code" binding:"required"`
}

type CheckInRequest struct {
	Emoji string `json:"emoji"`
	Mood  string `json:"mood"`
}

type ContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type ContactUpdateRequest struct {
	ID      int64 `json:"id" binding:"required"`
	Enabled bool  `json:"enabled"`
}

type ReminderSettingsRequest struct {
	Enabled                bool `json:"enabled"`
	SelfReminderEnabled    bool `json:"self_reminder_enabled"`
	SelfReminderDays       int  `json:"self_reminder_days"`
	ContactReminderEnabled bool `json:"contact_reminder_enabled"`
	ContactReminderDays    int  `json:"contact_reminder_days"`
}

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required"`
}
