package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"task-planner/internal/task"
	pkgLog "task-planner/pkg/log"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Sender is the part of the Bot API client the handler talks to.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithMode(ctx context.Context, chatID int64, text string, parseMode string) error
}

// Config holds the chat-facing settings.
type Config struct {
	// Location is the zone times are shown in, UTC when nil.
	Location *time.Location
	// AllowedChats restricts who may add tasks. Empty allows everyone.
	AllowedChats []int64
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc task.UseCase, bot Sender, cfg Config) Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	allowed := make(map[int64]struct{}, len(cfg.AllowedChats))
	for _, id := range cfg.AllowedChats {
		allowed[id] = struct{}{}
	}
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		loc:     loc,
		allowed: allowed,
	}
}
