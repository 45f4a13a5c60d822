package main

import (
	"flag"
	"log/slog"
	"os"

	"glimmer/internal/config"
	"glimmer/internal/handler"
	"glimmer/internal/logger"
	"glimmer/internal/middleware"
	"glimmer/internal/model"
	"glimmer/internal/reminder"
	"glimmer/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.CheckIn{},
		&model.ReminderSettings{},
		&model.EmergencyContact{},
		&model.NotificationLog{},
		&model.EmailVerificationCode{},
	); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	mailer, err := service.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		slog.Error("mailer init failed", "err", err)
		os.Exit(1)
	}

	encourageSvc := service.NewEncourageService(cfg.LLM)
	authSvc := service.NewAuthService(db, mailer)
	checkinSvc := service.NewCheckInService(db, encourageSvc)
	contactSvc := service.NewContactService(db)
	settingsSvc := service.NewSettingsService(db)

	runner := reminder.NewRunner(reminder.NewStore(db), mailer, reminder.Config{
		PageSize:         cfg.Reminder.PageSize,
		AutoDisableAfter: cfg.Reminder.AutoDisableAfter,
	})

	jwtSecret := []byte(cfg.Auth.JWTSecret)
	authH := handler.NewAuthHandler(authSvc, jwtSecret)
	checkinH := handler.NewCheckInHandler(checkinSvc)
	contactH := handler.NewContactHandler(contactSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	cronH := handler.NewCronHandler(runner, cfg.Reminder.CronSecret)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/auth/send-code", authH.SendCode)
	r.POST("/api/auth/register", authH.Register)
	r.POST("/api/auth/login", authH.Login)
	r.POST("/api/auth/reset-password", authH.ResetPassword)

	// 外部调度器用共享密钥触发，不走用户鉴权
	r.GET("/api/cron/reminder", cronH.Run)

	api := r.Group("/api", middleware.JWTAuth(jwtSecret))
	api.PUT("/user/name", authH.UpdateName)
	api.POST("/checkin", checkinH.Create)
	api.GET("/checkin/today", checkinH.Today)
	api.GET("/checkins", checkinH.List)
	api.GET("/contacts", contactH.List)
	api.POST("/contacts", contactH.Add)
	api.PUT("/contacts", contactH.Update)
	api.DELETE("/contacts", contactH.Delete)
	api.GET("/settings/reminder", settingsH.Get)
	api.PUT("/settings/reminder", settingsH.Update)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
