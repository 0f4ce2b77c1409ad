package main

import (
	"fmt"
	"net/http"
	"os"

	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/handlers"
	"studyhub/internal/logger"
	"studyhub/internal/middleware"
	"studyhub/internal/services"
	"studyhub/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "studyhub/internal/docs" // Import swagger docs
)

// @title           StudyHub API
// @version         1.0
// @description     StudyHub is a personal study organization application: subjects, notes, a calendar with reminders, and LLM-generated flashcards.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	jwtManager := middleware.NewJWTManager(cfg.JWTSecret, cfg.JWTExpirationDur)
	userService := services.NewUserService(db)
	mailer := services.NewEmailService(cfg)
	resetService := services.NewPasswordResetService(db, mailer, cfg.ResetTokenTTL)
	subjectService := services.NewSubjectService(db)
	noteService := services.NewNoteService(db)
	calendarService := services.NewCalendarService(db)
	flashcardService := services.NewFlashcardService(cfg.GroqAPIKey, "")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, resetService, jwtManager)
	userHandler := handlers.NewUserHandler(userService)
	subjectHandler := handlers.NewSubjectHandler(subjectService)
	noteHandler := handlers.NewNoteHandler(noteService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Event types are global reference data
	v1.GET("/calendar/event-types", calendarHandler.ListEventTypes)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtManager))

	// User profile and settings
	users := protected.Group("/users")
	users.GET("/me", userHandler.GetMe)
	users.GET("/me/settings", userHandler.GetSettings)
	users.PUT("/me/settings", userHandler.UpdateSettings)

	// Subject routes
	subjects := protected.Group("/subjects")
	subjects.POST("", subjectHandler.CreateSubject)
	subjects.GET("", subjectHandler.GetUserSubjects)
	subjects.GET("/:id", subjectHandler.GetSubjectByID)
	subjects.PUT("/:id", subjectHandler.UpdateSubject)
	subjects.DELETE("/:id", subjectHandler.DeleteSubject)

	// Note routes
	notes := protected.Group("/notes")
	notes.POST("", noteHandler.CreateNote)
	notes.GET("", noteHandler.GetUserNotes)
	notes.GET("/:id", noteHandler.GetNoteByID)
	notes.PUT("/:id", noteHandler.UpdateNote)
	notes.DELETE("/:id", noteHandler.DeleteNote)

	// Calendar routes
	calendar := protected.Group("/calendar")
	calendar.POST("", calendarHandler.CreateEvent)
	calendar.GET("", calendarHandler.GetUserEvents)
	calendar.GET("/:id", calendarHandler.GetEventByID)
	calendar.PUT("/:id", calendarHandler.UpdateEvent)
	calendar.DELETE("/:id", calendarHandler.DeleteEvent)

	// Flashcard routes
	flashcards := protected.Group("/flashcards")
	flashcards.POST("/generate", flashcardHandler.GenerateFlashcards)

	log.Infof("Starting StudyHub backend server on port %s", cfg.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
