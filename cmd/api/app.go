package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	dbadapter "cmms/internal/adapter/db"
	"cmms/internal/adapter/mail"
	"cmms/internal/adapter/storage"
	"cmms/internal/app/service"
	"cmms/internal/config"
	"cmms/internal/core/ports"
	"cmms/pkg/logger"
	"cmms/pkg/translator"
)

const (
	mailBackendSMTP    = "smtp"
	mailBackendConsole = "console"
)

// app holds the wired services shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlx.DB

	users     *dbadapter.UserRepository
	audit     *service.AuditLogService
	tasks     *service.TaskService
	buildings *service.BuildingService
	userSvc   *service.UserService
	dashboard *service.DashboardService
}

func newApp() (*app, error) {
	cfg := config.LoadConfig()

	log := logger.New(logger.Config{
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Level:      zapcore.InfoLevel,
	})
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(log)

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguagePl, translator.LanguageEn},
		DefaultLanguage:    cfg.DefaultLanguage,
	})

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DbDriver, err)
	}

	mailer, err := newMailer(cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	users := dbadapter.NewUserRepository(db)
	buildings := dbadapter.NewBuildingRepository(db)
	tasks := dbadapter.NewTaskRepository(db)
	audit := service.NewAuditLogService(dbadapter.NewAuditRepository(db))
	blobs := storage.NewFileStore(cfg.MediaRoot)
	notifier := service.NewNotificationService(mailer, blobs, audit, cfg.DefaultFromEmail)

	return &app{
		cfg:       cfg,
		logger:    log,
		db:        db,
		users:     users,
		audit:     audit,
		tasks:     service.NewTaskService(tasks, users, buildings, blobs, audit, notifier),
		buildings: service.NewBuildingService(buildings, audit),
		userSvc:   service.NewUserService(users, audit),
		dashboard: service.NewDashboardService(tasks),
	}, nil
}

func newMailer(cfg *config.Config, log *zap.Logger) (ports.Mailer, error) {
	switch cfg.MailBackend {
	case "", mailBackendSMTP:
		return mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SmtpHost,
			Port:     cfg.SmtpPort,
			Username: cfg.SmtpUser,
			Password: cfg.SmtpPassword,
			UseSSL:   cfg.SmtpUseSSL,
		}), nil
	case mailBackendConsole:
		return mail.NewConsoleSender(log), nil
	default:
		return nil, fmt.Errorf("unsupported mail backend %q", cfg.MailBackend)
	}
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database connection", zap.Error(err))
	}
	if err := a.logger.Sync(); err != nil {
		a.logger.Debug("failed to sync logger", zap.Error(err))
	}
}
