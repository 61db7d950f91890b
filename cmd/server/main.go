package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/nandapratama/todo-share-api/internal/authz"
	"github.com/nandapratama/todo-share-api/internal/config"
	"github.com/nandapratama/todo-share-api/internal/constants"
	"github.com/nandapratama/todo-share-api/internal/database"
	"github.com/nandapratama/todo-share-api/internal/handlers"
	"github.com/nandapratama/todo-share-api/internal/logging"
	"github.com/nandapratama/todo-share-api/internal/middleware"
	"github.com/nandapratama/todo-share-api/internal/repository"
	"github.com/nandapratama/todo-share-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logging
	logging.Setup()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	shareRepo := repository.NewShareRepository(db)

	// The evaluator holds the entire permission matrix; every mutating or
	// sensitive read operation goes through it.
	evaluator := authz.NewEvaluator(shareRepo)

	// Services
	authService := services.NewAuthService(userRepo)
	todoService := services.NewTodoService(todoRepo, evaluator)
	shareService := services.NewShareService(shareRepo, todoRepo, userRepo, evaluator)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)
	shareHandler := handlers.NewShareHandler(shareService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Todo Share API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Todo routes (protected)
		todos := api.Group("/todos")
		todos.Use(middleware.RequireAuth())
		{
			todos.GET("", todoHandler.ListTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.GET("/:id", todoHandler.GetTodo)
			todos.PATCH("/:id", todoHandler.UpdateTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
		}

		// Share routes (protected)
		shares := api.Group("/shares")
		shares.Use(middleware.RequireAuth())
		{
			shares.POST("", shareHandler.ShareTodo)
			shares.GET("/received", shareHandler.ListReceived)
			shares.GET("/given", shareHandler.ListGiven)
			shares.PATCH("/permission", shareHandler.UpdatePermission)
			shares.DELETE("/:id", shareHandler.Unshare)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
