package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	application "github.com/freitasmatheusrn/liquid-catalog/application"
	configs "github.com/freitasmatheusrn/liquid-catalog/configs"
	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/freitasmatheusrn/liquid-catalog/internal/database/postgres"
	redisdb "github.com/freitasmatheusrn/liquid-catalog/internal/database/redis"
	"github.com/freitasmatheusrn/liquid-catalog/internal/email"
	"github.com/freitasmatheusrn/liquid-catalog/internal/email/mailjet"
	"github.com/freitasmatheusrn/liquid-catalog/internal/email/smtp"
	"github.com/freitasmatheusrn/liquid-catalog/internal/ingestion"
	"github.com/freitasmatheusrn/liquid-catalog/internal/ingestion/source"
	"github.com/freitasmatheusrn/liquid-catalog/internal/metrics"
	"github.com/freitasmatheusrn/liquid-catalog/internal/scheduler"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/notification"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/notification/twilio"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	config, err := configs.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	logger := newLogger(config.LogPath)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := configs.LoadCatalogRules(config.CatalogRulesPath)
	if err != nil {
		logger.Fatal("invalid catalog rules", zap.Error(err))
	}
	normalizer, err := catalog.NewNormalizer(rules, logger)
	if err != nil {
		logger.Fatal("invalid catalog rules", zap.Error(err))
	}

	db, err := postgres.Init(ctx, postgres.Config{DSN: config.DatabaseURL, MaxConns: config.DBMaxConns})
	if err != nil {
		panic("error starting db: " + err.Error())
	}
	defer db.Close()

	repo := postgres.NewCatalogRepository(db)
	current := catalog.NewCurrent()
	if gen, err := repo.LoadCurrent(ctx); err != nil {
		logger.Error("failed to load stored catalog, serving empty until the next run", zap.Error(err))
	} else if gen != nil {
		current.Swap(gen)
		logger.Info("stored catalog loaded",
			zap.String("generation_id", gen.ID.String()),
			zap.Int("products", len(gen.Products)),
		)
	}

	registry := metrics.NewRegistry()
	checks := map[string]application.HealthCheck{"postgres": db.Ping}
	opts := []ingestion.RunnerOption{ingestion.WithMetrics(registry)}

	if config.RedisEnabled() {
		redisClient, err := redisdb.NewClient(redisdb.Config{
			URL:      config.RedisURL,
			Host:     config.RedisHost,
			Port:     config.RedisPort,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		if err != nil {
			panic("error starting redis: " + err.Error())
		}
		defer redisClient.Close()

		opts = append(opts,
			ingestion.WithLocker(redisdb.NewIngestionLock(redisClient)),
			ingestion.WithStatusStore(redisdb.NewRunStatusStore(redisClient)),
		)
		checks["redis"] = redisClient.HealthCheck
	}

	replacer := ingestion.NewReplacer(repo, current, logger)
	runner := ingestion.NewRunner(config.IngestionConfig(), source.NewWorkbook(config.WorkbookPath), normalizer, replacer, logger, opts...)

	sched := scheduler.NewScheduler(runner, logger, newEmail(config), newSMS(config), scheduler.Config{
		Timeout:         config.IngestionTimeout,
		AlertRecipients: config.AlertRecipients,
		AlertPhones:     config.AlertPhones,
	})
	if err := sched.Start(config.CronExpression); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer func() { <-sched.Stop().Done() }()

	if config.RunOnStartup {
		go sched.RunNow(ctx, ingestion.TriggerStartup)
	}

	app := application.Application{
		Config:  *config,
		Logger:  logger,
		Current: current,
		Trigger: sched,
		Status:  runner,
		Metrics: registry,
		Checks:  checks,
	}

	if err := app.Run(ctx, app.Mount()); err != nil {
		logger.Error("server failed", zap.Error(err))
	}
}

func newEmail(config *configs.Configs) email.Email {
	switch config.EmailProvider {
	case "smtp":
		return smtp.New(config.SMTP_HOST, config.SMTP_USER, config.SMTP_PASS, config.MailFrom, config.SMTP_PORT)
	case "mailjet":
		return mailjet.New(config.MAILJET_API_KEY, config.MAILJET_API_SECRET, config.MailFrom, config.MailFromName)
	}
	return nil
}

func newSMS(config *configs.Configs) notification.Notification {
	if config.TwilioAccountSID == "" || config.TwilioNumber == "" {
		return nil
	}
	client := twilio.InitClient(config.TwilioAccountSID, config.TwilioAuthToken)
	return twilio.NewSMS(config.TwilioNumber, client)
}

func newLogger(logPath string) *zap.Logger {
	// Configure encoder
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// Console core: all levels (Info+) to stdout
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.InfoLevel,
	)

	if logPath == "" {
		return zap.New(consoleCore)
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		panic("failed to open log file: " + err.Error())
	}

	// File encoder without colors
	fileEncoderConfig := encoderConfig
	fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	// File core: only Warn and Error levels
	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(fileEncoderConfig),
		zapcore.AddSync(logFile),
		zap.WarnLevel,
	)

	return zap.New(zapcore.NewTee(consoleCore, fileCore))
}
