package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"glimmer/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	codeResendWindow = 60 * time.Second
	codeTTL          = 15 * time.Minute
	minPasswordLen   = 6
)

var (
	ErrEmailTaken       = errors.New("邮箱已被注册")
	ErrBadCredentials   = errors.New("邮箱或密码错误")
	ErrInvalidCode      = errors.New("验证码无效或已过期，请重新获取")
	ErrWeakPassword     = errors.New("密码长度至少为 6 位")
	ErrInvalidEmail     = errors.New("邮箱格式不正确")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrResendTooSoon    = errors.New("验证码发送过于频繁")
	ErrPasswordMismatch = errors.New("两次输入的密码不一致")
)

type AuthService struct {
	db     *gorm.DB
	mailer Mailer
}

func NewAuthService(db *gorm.DB, mailer Mailer) *AuthService {
	return &AuthService{db: db, mailer: mailer}
}

// SendVerificationCode mails a 6-digit code, at most once per minute per email.
// Returns the seconds the caller must still wait when rate-limited.
func (s *AuthService) SendVerificationCode(ctx context.Context, email string) (retryAfter int, err error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return 0, ErrInvalidEmail
	}

	now := time.Now().UTC()
	var recent model.EmailVerificationCode
	err = s.db.WithContext(ctx).
		Where("email = ? AND used = ? AND created_at >= ?", email, false, now.Add(-codeResendWindow)).
		Order("created_at DESC").
		First(&recent).Error
	if err == nil {
		left := int(codeResendWindow.Seconds()) - int(now.Sub(recent.CreatedAt).Seconds())
		if left < 0 {
			left = 0
		}
		return left, ErrResendTooSoon
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("query recent code: %w", err)
	}

	code, err := sixDigitCode()
	if err != nil {
		return 0, fmt.Errorf("generate code: %w", err)
	}

	rec := model.EmailVerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(codeTTL),
		CreatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("save code: %w", err)
	}

	text := fmt.Sprintf("你的微光验证码是：%s\n\n15 分钟内有效，请勿泄露给他人。\n\n— 微光 Glimmer", code)
	result := s.mailer.SendEmail(ctx, Email{
		To:      email,
		Subject: "微光验证码",
		Text:    text,
	})
	if !result.Success {
		return 0, fmt.Errorf("send code mail: %s", result.Error)
	}
	return 0, nil
}

// consumeCode validates and burns a verification code inside the caller's flow.
func (s *AuthService) consumeCode(ctx context.Context, email, code string) error {
	var rec model.EmailVerificationCode
	err := s.db.WithContext(ctx).
		Where("email = ? AND code = ? AND used = ? AND expires_at > ?", email, code, false, time.Now().UTC()).
		Order("created_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("query code: %w", err)
	}
	return s.db.WithContext(ctx).Model(&rec).Update("used", true).Error
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := s.consumeCode(ctx, email, req.VerificationCode); err != nil {
		return nil, err
	}

	var existing model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{Email: email, Password: string(hash), Name: req.Name}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &u, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	email := normalizeEmail(req.Email)
	if len(req.Password) < minPasswordLen {
		return ErrWeakPassword
	}
	if err := s.consumeCode(ctx, email, req.VerificationCode); err != nil {
		return err
	}

	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("query user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(&u).Update("password", string(hash)).Error
}

func (s *AuthService) UpdateName(ctx context.Context, userID int64, name string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("name", name).Error
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return strings.Contains(email, "@")
}
