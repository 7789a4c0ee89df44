package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/config"
	"github.com/openlodge/clubadmin/internal/pkg/metrics"
	"github.com/openlodge/clubadmin/internal/server/http/handlers"
	"github.com/openlodge/clubadmin/internal/server/http/middleware"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.ConsoleFacade, health HealthChecker, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	if len(cfg.CORSAllowOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSAllowOrigins
		corsCfg.AllowCredentials = true
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		engine.Use(cors.New(corsCfg))
	}

	engine.GET("/healthz", func(c *gin.Context) {
		if err := health.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	authHandler := handlers.NewAuthHandler(facade)
	membersHandler := handlers.NewMembersHandler(facade)
	moneyHandler := handlers.NewMoneyHandler(facade)
	postsHandler := handlers.NewPostsHandler(facade)
	mediaHandler := handlers.NewMediaHandler(facade)
	expenseHandler := handlers.NewExpenseHandler(facade)
	exportHandler := handlers.NewExportHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	// reimbursement submission is open to every authenticated member
	expense := api.Group("/expensereport")
	expense.Use(middleware.AuthRequired(facade))
	expense.POST("", expenseHandler.Submit)
	expense.GET("", expenseHandler.List)
	expense.GET("/:id", expenseHandler.Get)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.StaffOnly())

	users := admin.Group("/users")
	users.GET("", membersHandler.List)
	users.POST("", middleware.AdminOnly(), membersHandler.Create)
	users.GET("/:id", membersHandler.Get)
	users.PATCH("/:id", membersHandler.Update)
	users.POST("/:id/subscription", membersHandler.ChangePlan)

	money := admin.Group("/money")
	money.GET("", moneyHandler.List)
	money.GET("/summary", moneyHandler.Summary)
	money.POST("/payments", moneyHandler.Payment)
	money.POST("/refunds", moneyHandler.Refund)
	money.POST("/credits", moneyHandler.Credit)

	posts := admin.Group("/posts")
	posts.POST("", postsHandler.Create)
	posts.GET("", postsHandler.List)
	posts.GET("/:id", postsHandler.Get)
	posts.PUT("/:id/draft", postsHandler.SaveDraft)
	posts.POST("/:id/publish", postsHandler.Publish)
	posts.POST("/:id/unpublish", postsHandler.Unpublish)

	media := admin.Group("/media")
	media.GET("", mediaHandler.List)
	media.POST("/uploads", mediaHandler.RegisterUpload)
	media.POST("/uploads/:id/complete", mediaHandler.CompleteUpload)
	media.GET("/:id", mediaHandler.Get)
	media.DELETE("/:id", mediaHandler.Delete)

	adminExpense := admin.Group("/expensereport")
	adminExpense.POST("/:id/approve", expenseHandler.Approve)
	adminExpense.POST("/:id/reject", expenseHandler.Reject)
	adminExpense.POST("/:id/paid", expenseHandler.MarkPaid)

	export := admin.Group("/export")
	export.POST("", exportHandler.Create)
	export.GET("/:id", exportHandler.Get)

	return engine
}
