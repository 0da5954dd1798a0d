package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Extra middlewares, such as the rate limiter, run before every route.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mws ...gin.HandlerFunc) {
	rg.Use(mws...)

	tasks := rg.Group("/tasks")
	{
		tasks.POST("/preview", h.Preview)
		tasks.POST("/quick", h.QuickAdd)
		tasks.POST("/recurring", h.CreateRecurring)
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/overdue", h.Overdue)
		tasks.GET("/:id", h.Detail)
		tasks.POST("/:id/complete", h.Complete)
		tasks.POST("/:id/materialize", h.Materialize)
		tasks.DELETE("/:id", h.Delete)
	}

	rg.GET("/timeline", h.Timeline)
	rg.GET("/calendar.ics", h.Calendar)
}
