package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"task-planner/internal/middleware"
	taskHTTP "task-planner/internal/task/delivery/http"
	tgDelivery "task-planner/internal/task/delivery/telegram"
	"task-planner/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration
	startedAt       time.Time
	ready           ReadyCheck

	middleware middleware.Middleware

	// Task domain
	taskHandler     taskHTTP.Handler
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	ReadyCheck      ReadyCheck // optional

	Middleware middleware.Middleware

	// Task domain
	TaskHandler     taskHTTP.Handler
	TelegramHandler tgDelivery.Handler // optional
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		startedAt:       time.Now(),
		ready:           cfg.ReadyCheck,
		middleware:      cfg.Middleware,
		taskHandler:     cfg.TaskHandler,
		telegramHandler: cfg.TelegramHandler,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskHandler == nil {
		return errors.New("task handler is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
