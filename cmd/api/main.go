package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-planner/config"
	_ "task-planner/docs" // Swagger docs
	"task-planner/internal/httpserver"
	"task-planner/internal/intake"
	"task-planner/internal/middleware"
	"task-planner/internal/recurrence"
	"task-planner/internal/scheduler"
	"task-planner/internal/task"
	taskHTTP "task-planner/internal/task/delivery/http"
	tgDelivery "task-planner/internal/task/delivery/telegram"
	"task-planner/internal/task/usecase"
	"task-planner/pkg/datemath"
	"task-planner/pkg/log"
	"task-planner/pkg/telegram"
)

const (
	refreshTimeout = 5 * time.Minute
	stopTimeout    = 10 * time.Second
)

// @title       Task Planner API
// @description Natural-language task capture, recurring tasks and a merged day timeline.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "Planner stopped with error: ", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	logger.Info(ctx, "Starting task planner...")
	logger.Infof(ctx, "Environment: %s, timezone: %s, storage: %s", cfg.Environment.Name, cfg.Planner.Timezone, cfg.Storage.Driver)

	// 3. Calendar and domain engines
	cal, err := datemath.New(cfg.Planner.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	clock := datemath.SystemClock{}
	engine := recurrence.New(cal)
	pipeline := intake.New(cal, clock, intake.DefaultConfig().WithPeriods(cfg.Planner.Periods))

	// 4. Storage
	repo, closeRepo, err := openRepository(ctx, logger, cal, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeRepo()

	// 5. External calendars (optional)
	events := eventSources(ctx, logger, cal.Location(), cfg)

	// 6. Task UseCase
	taskUC := usecase.New(logger, repo, engine, pipeline, clock, events, task.Settings{
		WindowDays:      cfg.Planner.WindowDays,
		DefaultDuration: cfg.Planner.DefaultDuration,
		ReminderOffset:  cfg.Planner.ReminderOffset,
	})
	defer taskUC.Close()

	// 7. Rolling window: refresh now, then on schedule
	sched, err := scheduler.New(logger, taskUC, cfg.Planner.RefreshCron, cal.Location(), refreshTimeout)
	if err != nil {
		return err
	}
	if _, err := sched.RunOnce(ctx); err != nil {
		logger.Warnf(ctx, "Initial refresh failed: %v", err)
	}
	sched.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		sched.Stop(stopCtx)
	}()
	logger.Infof(ctx, "Template refresh scheduled (%s), next run at %s", cfg.Planner.RefreshCron, sched.Next().Format(time.RFC3339))

	// 8. Telegram (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, taskUC, bot, tgDelivery.Config{
			Location:     cal.Location(),
			AllowedChats: cfg.Telegram.AllowedChats,
		})
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Warn(ctx, "Telegram skipped: telegram.bot_token is empty")
	}

	// 9. HTTP Server
	mw := middleware.New(logger, middleware.Config{
		RequestsPerMin: cfg.RateLimit.RequestsPerMin,
		MaxClients:     cfg.RateLimit.MaxClients,
	})
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		ReadyCheck: func(ctx context.Context) error {
			_, err := taskUC.List(ctx, task.ListInput{TemplatesOnly: true})
			return err
		},
		Middleware: mw,
		TaskHandler: taskHTTP.New(logger, taskUC, taskHTTP.Config{
			Location:       cal.Location(),
			ReminderOffset: cfg.Planner.ReminderOffset,
			WindowDays:     cfg.Planner.WindowDays,
		}),
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	// 10. Run
	return httpServer.Run(ctx)
}

// registerWebhook points Telegram at this server: the configured URL, or
// the public URL of a local ngrok tunnel.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPI != "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.NgrokAPI, ngrokAttempts, ngrokRetryDelay)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}
	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook not registered: no webhook URL")
		return
	}
	if err := bot.SetWebhook(ctx, webhookURL); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
