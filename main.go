// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HassanAli010/UserPref-CRS/internal/config"
	"github.com/HassanAli010/UserPref-CRS/internal/database"
	"github.com/HassanAli010/UserPref-CRS/internal/handlers"
	"github.com/HassanAli010/UserPref-CRS/internal/repository"
	"github.com/HassanAli010/UserPref-CRS/internal/routes"
	"github.com/HassanAli010/UserPref-CRS/internal/services"
)

func main() {

	// =========================
	// LOAD CONFIG (SAFE)
	// =========================
	if err := config.LoadConfig(); err != nil {
		log.Println("⚠️ Config load warning:", err)
		log.Println("⚠️ Using environment variables only")
	}
	cfg := config.GlobalConfig

	// =========================
	// LOAD CATALOG (FATAL)
	// =========================
	// The catalog artifacts are static input, loaded once and shared by
	// every request. Without them no recommendation is possible.
	catalogRepo, err := repository.NewCatalogRepository(cfg.CoursesPath, cfg.SimilarityPath)
	if err != nil {
		log.Fatalf("❌ Catalog unavailable: %v", err)
	}

	// =========================
	// INIT USER STORE
	// =========================
	var userRepo repository.UserRepository

	if cfg.StoreBackend == "badger" {
		if err := database.ConnectDB(); err != nil {
			log.Println("⚠️ Badger store failed:", err)
			log.Println("⚠️ Falling back to the JSON user store")
		} else {
			defer database.CloseDB()
			userRepo = repository.NewBadgerUserRepository(database.DB)
		}
	}

	if userRepo == nil {
		userRepo, err = repository.NewJSONUserRepository(cfg.UsersDataPath)
		if err != nil {
			log.Fatalf("❌ Failed to initialize user store: %v", err)
		}
	}

	adminRepo, err := repository.NewJSONAdminRepository(cfg.AdminDataPath)
	if err != nil {
		log.Fatalf("❌ Failed to initialize admin store: %v", err)
	}

	// =========================
	// INIT SERVICES
	// =========================
	contentService := services.NewContentBasedService(catalogRepo)
	collaborativeService := services.NewCollaborativeService(userRepo, catalogRepo)
	recommenderService := services.NewRecommenderService(
		contentService,
		collaborativeService,
		userRepo,
	)
	log.Println("✅ Recommender services initialized")

	// =========================
	// INIT HANDLERS
	// =========================
	authHandler := handlers.NewAuthHandler(userRepo, adminRepo)
	courseHandler := handlers.NewCourseHandler(catalogRepo, userRepo)
	recommendationHandler := handlers.NewRecommendationHandler(recommenderService)
	adminHandler := handlers.NewAdminHandler(userRepo)

	// =========================
	// ROUTES
	// =========================
	router := routes.SetupRoutes(
		authHandler,
		courseHandler,
		recommendationHandler,
		adminHandler,
	)

	// =========================
	// PORT
	// =========================
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.ServerPort
	}
	if port == "" {
		port = "8080"
	}

	bindAddr := "0.0.0.0:" + port

	// =========================
	// SERVER CONFIG
	// =========================
	server := &http.Server{
		Addr:         bindAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// =========================
	// START SERVER
	// =========================
	go func() {
		log.Println("🎓 =======================================")
		log.Println("🎓   COURSE RECOMMENDATION API SERVER")
		log.Println("🎓 =======================================")
		log.Printf("🎓   Running on: %s", bindAddr)
		log.Printf("🎓   Courses: %d | Store backend: %s", catalogRepo.CourseCount(), cfg.StoreBackend)
		log.Println("🎓 =======================================")
		log.Println("🚀 Server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("❌ Server error:", err)
		}
	}()

	// =========================
	// GRACEFUL SHUTDOWN
	// =========================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("✅ Server exited properly")
}
