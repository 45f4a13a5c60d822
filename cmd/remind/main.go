// 手动/运维触发的失联检测批处理，与 HTTP cron 入口共用同一套 Runner。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"glimmer/internal/config"
	"glimmer/internal/logger"
	"glimmer/internal/reminder"
	"glimmer/internal/service"
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

	mailer, err := service.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		slog.Error("mailer init failed", "err", err)
		os.Exit(1)
	}

	runner := reminder.NewRunner(reminder.NewStore(db), mailer, reminder.Config{
		PageSize:         cfg.Reminder.PageSize,
		AutoDisableAfter: cfg.Reminder.AutoDisableAfter,
	})

	if err := runner.Run(context.Background()); err != nil {
		slog.Error("reminder run failed", "err", err)
		os.Exit(1)
	}
}
