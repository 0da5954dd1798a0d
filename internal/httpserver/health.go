package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"task-planner/pkg/response"
)

const (
	ServiceName    = "task-planner"
	ServiceVersion = "1.0.0"

	readyCheckTimeout = 2 * time.Second
)

// ReadyCheck reports whether the planner can serve requests.
type ReadyCheck func(ctx context.Context) error

func (srv HTTPServer) status(state string) gin.H {
	return gin.H{
		"status":      state,
		"service":     ServiceName,
		"version":     ServiceVersion,
		"environment": srv.environment,
		"uptime":      time.Since(srv.startedAt).Truncate(time.Second).String(),
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.status("healthy"))
}

// readyCheck runs the configured ReadyCheck, usually a store round trip.
// @Summary Readiness Check
// @Description Check that the task store answers
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "Task store unavailable"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyCheckTimeout)
		defer cancel()
		if err := srv.ready(ctx); err != nil {
			srv.l.Warnf(ctx, "httpserver.readyCheck: %v", err)
			response.ServiceUnavailable(c)
			return
		}
	}
	response.OK(c, srv.status("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.status("alive"))
}
