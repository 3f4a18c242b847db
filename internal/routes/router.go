package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tasktrack/internal/config"
	"tasktrack/internal/controller"
	"tasktrack/internal/session"
	"tasktrack/pkg/logger"
)

// Router builds the HTTP surface: public auth pages plus the session-guarded
// task pages.
func Router(ctrl *controller.Controller, sessions session.Manager) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID())
	router.LoadHTMLGlob(config.Get().TemplateGlob)

	// Health for load balancers and K8s probes
	router.GET("/health", controller.Health)
	router.GET("/ready", controller.Ready)

	// Public: no session required
	router.GET("/login", ctrl.ShowLogin)
	router.POST("/login", ctrl.Login)
	router.GET("/signup", ctrl.ShowSignup)
	router.POST("/signup", ctrl.Signup)
	router.GET("/logout", ctrl.Logout)

	// Guarded: everything task-facing needs a live session
	app := router.Group("")
	app.Use(session.RequireUser(sessions))
	{
		app.GET("/", ctrl.Home)
		app.POST("/", ctrl.CreateTask)
		app.GET("/complete/:id", ctrl.CompleteTask)
		app.GET("/delete/:id", ctrl.DeleteTask)
		app.GET("/clear_completed", ctrl.ClearCompleted)
	}

	return router
}

// requestID tags every request's logger with a fresh id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithRequestID(c.Request.Context(), uuid.New().String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
