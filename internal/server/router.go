// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"fintrack/internal/credential"
	"fintrack/internal/handlers"
	"fintrack/internal/metrics"
	"fintrack/internal/middleware"
	"fintrack/internal/services"

	_ "fintrack/internal/docs" // registers the swagger spec
)

// Deps are the collaborators the router needs.
type Deps struct {
	DB             *gorm.DB
	Engine         *credential.Engine
	Metrics        *metrics.HTTPMetrics
	AllowedOrigins []string
}

// NewRouter wires services, handlers and middleware onto a gin engine.
func NewRouter(deps Deps) *gin.Engine {
	userService := services.NewUserService(deps.DB)
	transactionService := services.NewTransactionService(deps.DB)
	budgetService := services.NewBudgetService(deps.DB)
	goalService := services.NewGoalService(deps.DB)
	auditService := services.NewAuditService(deps.DB)
	resolver := services.NewIdentityResolver(deps.Engine, deps.DB)

	authHandler := handlers.NewAuthHandler(userService, deps.Engine)
	userHandler := handlers.NewUserHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
	router.GET("/health", health)
	router.GET("/api/health", health)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/login/access-token", authHandler.Login)
	v1.POST("/users", userHandler.CreateUser)

	// Protected routes
	active := v1.Group("")
	active.Use(middleware.Authenticate(resolver), middleware.RequireActive())

	active.POST("/auth/login/test-token", authHandler.TestToken)

	me := active.Group("/users/me")
	me.GET("", userHandler.GetMe)
	me.PUT("", userHandler.UpdateMe)

	admin := active.Group("/users")
	admin.Use(middleware.RequireSuperuser())
	admin.GET("", userHandler.ListUsers)
	admin.GET("/:id", userHandler.GetUser)
	admin.PUT("/:id", userHandler.UpdateUser)

	transactions := active.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := active.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	goals := active.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	return router
}
