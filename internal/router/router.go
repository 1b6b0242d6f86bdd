// Package router assembles the repositories, services and handlers into a
// single gin engine.
package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "github.com/eaglebank/expense-ledger/docs"
	"github.com/eaglebank/expense-ledger/internal/activity"
	"github.com/eaglebank/expense-ledger/internal/command"
	"github.com/eaglebank/expense-ledger/internal/handler"
	"github.com/eaglebank/expense-ledger/internal/query"
	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/auth"
	"github.com/eaglebank/expense-ledger/shared/authz"
	"github.com/eaglebank/expense-ledger/shared/events"
	"github.com/eaglebank/expense-ledger/shared/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Services is the command and query side of the application.
type Services struct {
	TransactionCommands *command.TransactionCommandService
	UserCommands        *command.UserCommandService

	Auth         *query.AuthQueryService
	Transactions *query.TransactionQueryService
	Users        *query.UserQueryService
	Activity     *query.ActivityQueryService
	Dashboard    *query.DashboardQueryService
}

// NewServices wires repositories over db. A nil redis client disables
// dashboard caching.
func NewServices(db *sql.DB, rdb *goredis.Client, cacheTTL time.Duration, publisher events.Publisher, tokens *auth.TokenManager, log *zap.Logger) *Services {
	if log == nil {
		log = zap.NewNop()
	}

	// CQRS: write repos, read repos
	txWrite := repository.NewTransactionWriteRepository(db)
	txRead := repository.NewTransactionReadRepository(db)
	userWrite := repository.NewUserWriteRepository(db)
	userRead := repository.NewUserReadRepository(db)
	logs := repository.NewActivityLogRepository(db)

	var cache *repository.DashboardCache
	if rdb != nil {
		cache = repository.NewDashboardCache(rdb, cacheTTL, log)
	}
	recorder := activity.NewRecorder(logs, log)

	return &Services{
		TransactionCommands: command.NewTransactionCommandService(txWrite, txRead, recorder, cache, publisher, log),
		UserCommands:        command.NewUserCommandService(userWrite, txRead, recorder, cache, publisher, log),
		Auth:                query.NewAuthQueryService(userWrite, tokens),
		Transactions:        query.NewTransactionQueryService(txRead),
		Users:               query.NewUserQueryService(userRead),
		Activity:            query.NewActivityQueryService(logs),
		Dashboard:           query.NewDashboardQueryService(txRead, userRead, cache),
	}
}

type Options struct {
	Tokens         *auth.TokenManager
	Policy         *authz.Policy
	CookieSecure   bool
	AllowedOrigins []string
	Swagger        bool
	Logger         *zap.Logger
}

// reportQueries joins the two read services behind handler.ReportQuerier.
type reportQueries struct {
	*query.ActivityQueryService
	*query.DashboardQueryService
}

// New returns the HTTP engine. Everything except /health, /swagger and the
// login flow sits behind the session check and the edge role policy.
func New(svc *Services, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	policy := opts.Policy
	if policy == nil {
		policy = authz.DefaultPolicy()
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.LoggingMiddleware(log), gin.Recovery())
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	authHandler := handler.NewAuthHandler(svc.UserCommands, svc.Auth, opts.Tokens, handler.CookieOptions{
		Secure: opts.CookieSecure,
		TTL:    opts.Tokens.TTL(),
	})
	transactionHandler := handler.NewTransactionHandler(svc.TransactionCommands, svc.Transactions)
	userHandler := handler.NewUserHandler(svc.UserCommands, svc.Users)
	reportHandler := handler.NewReportHandler(reportQueries{svc.Activity, svc.Dashboard})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Auth routes (no authentication required)
	public := router.Group("/auth")
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/logout", authHandler.Logout)
	public.GET("/session", authHandler.Session)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(opts.Tokens), middleware.RequireRoles(policy))

	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/categories", reportHandler.ListCategories)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/export", transactionHandler.ExportTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	users := protected.Group("/users")
	users.GET("", userHandler.ListUsers)
	users.DELETE("/:id", userHandler.DeleteUser)

	protected.GET("/activity-logs", reportHandler.ListActivityLogs)
	protected.GET("/dashboard/summary", reportHandler.DashboardSummary)

	return router
}
