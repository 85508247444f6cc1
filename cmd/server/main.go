package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kidic/internal/config"
	"kidic/internal/database"
	"kidic/internal/handlers"
	"kidic/internal/push"
	"kidic/internal/repository"
	"kidic/internal/service"
	"kidic/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	parentRepo := repository.NewParentRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	childRepo := repository.NewChildRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	// Token codec and push hub
	codec := token.NewCodec(cfg.TokenSecret, cfg.TokenDuration)
	hub := push.NewHub()

	// Initialize services
	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	familyService := service.NewFamilyService(familyRepo, parentRepo, childRepo, emailService)
	notificationService := service.NewNotificationService(notificationRepo, parentRepo, familyRepo, hub)
	authService := service.NewAuthService(parentRepo, familyService, notificationService, codec)
	guard := service.NewAccessGuard(codec, parentRepo, childRepo)
	childService := service.NewChildService(guard, childRepo, familyService)
	recordService := service.NewRecordService(guard, recordRepo, notificationService)

	// Initialize handlers
	middleware := handlers.NewMiddleware(codec)
	authHandler := handlers.NewAuthHandler(authService)
	familyHandler := handlers.NewFamilyHandler(familyService, guard)
	childHandler := handlers.NewChildHandler(childService)
	recordHandler := handlers.NewRecordHandler(recordService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, guard)
	wsHandler := handlers.NewWSHandler(hub, codec)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register/new-family", middleware.RateLimit(authHandler.RegisterNewFamily))
	mux.HandleFunc("POST /api/auth/register/join-family", middleware.RateLimit(authHandler.RegisterJoinFamily))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))

	// Family routes
	mux.HandleFunc("GET /api/family", middleware.RequireAuth(familyHandler.GetFamily))
	mux.HandleFunc("POST /api/family/invite", middleware.RequireAuth(familyHandler.InviteParent))

	// Child routes
	mux.HandleFunc("POST /api/children", middleware.RequireAuth(childHandler.CreateChild))
	mux.HandleFunc("GET /api/children", middleware.RequireAuth(childHandler.ListChildren))
	mux.HandleFunc("GET /api/children/{id}", middleware.RequireAuth(childHandler.GetChild))
	mux.HandleFunc("PUT /api/children/{id}", middleware.RequireAuth(childHandler.UpdateChild))
	mux.HandleFunc("DELETE /api/children/{id}", middleware.RequireAuth(childHandler.DeleteChild))

	// Child record routes
	mux.HandleFunc("POST /api/children/{id}/medical-records", middleware.RequireAuth(recordHandler.AddMedicalRecord))
	mux.HandleFunc("GET /api/children/{id}/medical-records", middleware.RequireAuth(recordHandler.ListMedicalRecords))
	mux.HandleFunc("POST /api/children/{id}/growth-records", middleware.RequireAuth(recordHandler.AddGrowthRecord))
	mux.HandleFunc("GET /api/children/{id}/growth-records", middleware.RequireAuth(recordHandler.ListGrowthRecords))
	mux.HandleFunc("POST /api/children/{id}/meals", middleware.RequireAuth(recordHandler.AddMeal))
	mux.HandleFunc("GET /api/children/{id}/meals", middleware.RequireAuth(recordHandler.ListMeals))

	// Notification routes
	mux.HandleFunc("POST /api/notifications/send", middleware.RequireAuth(notificationHandler.SendToFamily))
	mux.HandleFunc("POST /api/notifications/broadcast", middleware.RequireAuth(notificationHandler.Broadcast))
	mux.HandleFunc("GET /api/notifications", middleware.RequireAuth(notificationHandler.List))
	mux.HandleFunc("GET /api/notifications/unread", middleware.RequireAuth(notificationHandler.ListUnread))
	mux.HandleFunc("PUT /api/notifications/{id}/read", middleware.RequireAuth(notificationHandler.MarkRead))

	// Push channel
	mux.HandleFunc("GET /ws/notifications", wsHandler.Connect)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
