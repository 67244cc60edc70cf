package routes

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/HassanAli010/UserPref-CRS/internal/handlers"
	"github.com/HassanAli010/UserPref-CRS/internal/middleware"
)

func SetupRoutes(
	authHandler *handlers.AuthHandler,
	courseHandler *handlers.CourseHandler,
	recommendationHandler *handlers.RecommendationHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {

	router := gin.New()

	// =========================
	// GLOBAL MIDDLEWARE
	// =========================
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())

	// =========================
	// CORS CONFIG (DEV / PROD)
	// =========================
	env := os.Getenv("ENV") // development | production
	frontendURL := os.Getenv("CORS_ORIGIN")

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Authorization", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if env == "production" {
		// 🔒 PROD MODE: Require CORS_ORIGIN to be explicitly set
		if frontendURL == "" {
			log.Fatal("❌ CORS_ORIGIN environment variable is NOT set in production!")
		}
		corsConfig.AllowOrigins = []string{frontendURL}
		log.Printf("✅ CORS configured for production: %s", frontendURL)
	} else {
		// 🔓 DEV MODE: Allow flexible origins
		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}

		if frontendURL != "" {
			allowedOrigins = append(allowedOrigins, frontendURL)
		}

		corsConfig.AllowOriginFunc = func(origin string) bool {
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			// Allow local network IPs (192.168.x.x, 10.x.x.x)
			if strings.HasPrefix(origin, "http://192.168.") || strings.HasPrefix(origin, "http://10.") {
				return true
			}
			return false
		}
		log.Printf("✅ CORS configured for development with %d allowed origins", len(allowedOrigins))
	}

	router.Use(cors.New(corsConfig))

	// =========================
	// SECURITY HEADERS MIDDLEWARE
	// =========================
	router.Use(func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// =========================
	// API ROUTES
	// =========================
	api := router.Group("/api")
	{
		// ---------- AUTH ----------
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			authProtected := auth.Group("/")
			authProtected.Use(middleware.JWTMiddleware())
			{
				authProtected.GET("/me", authHandler.Me)
			}
		}

		// ---------- PUBLIC CATALOG ----------
		api.GET("/courses", courseHandler.GetAllCourses)

		// ---------- PROTECTED ----------
		protected := api.Group("/")
		protected.Use(middleware.JWTMiddleware())
		{
			// USER
			user := protected.Group("/user")
			{
				user.GET("/history", courseHandler.GetMyHistory)
			}

			// RECOMMENDATIONS
			recommendations := protected.Group("/recommendations")
			{
				recommendations.GET("/content", recommendationHandler.GetContentBasedRecommendations)
				recommendations.GET("/collaborative", recommendationHandler.GetCollaborativeRecommendations)
			}

			// ADMIN
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/users/:username/history", adminHandler.GetUserHistory)
				admin.DELETE("/users/:username/history", adminHandler.ClearUserHistory)
				admin.DELETE("/users/:username", adminHandler.DeleteUser)
			}
		}
	}

	// =========================
	// HEALTH & ROOT
	// =========================
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Server is running",
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Course Recommendation API",
			"version": "1.0.0",
		})
	})

	return router
}
