// cmd/api/main.go
// Main entry point for the application.
// This file bootstraps all components and starts the server.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nivkoren/levmatch-backend/internal/auth"
	"github.com/nivkoren/levmatch-backend/internal/common/database"
	"github.com/nivkoren/levmatch-backend/internal/config"
	"github.com/nivkoren/levmatch-backend/internal/dating"
	"github.com/nivkoren/levmatch-backend/internal/embedding"
	"github.com/nivkoren/levmatch-backend/internal/events"
	"github.com/nivkoren/levmatch-backend/internal/messaging"
	"github.com/nivkoren/levmatch-backend/internal/moderation"
	"github.com/nivkoren/levmatch-backend/internal/notification"
	"github.com/nivkoren/levmatch-backend/internal/profile"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting LevMatch Dating Engine API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Println("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("❌ Failed to ping PostgreSQL:", err)
	}
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional, used as the compatibility score cache)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v, continuing without score cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping score cache")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db.DB); err != nil {
		log.Printf("❌ Migration error: %v", err)
		log.Fatal("Failed to run migrations")
	}
	log.Println("✅ Database migrations completed")

	// 7. Event bus
	log.Println("\n📣 Step 7: Initializing event bus...")
	bus := events.NewBus()
	log.Println("✅ Event bus initialized")

	// 8. Auth
	log.Println("\n🔐 Step 8: Initializing authentication...")
	verifier := auth.NewVerifier(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(verifier)
	log.Println("✅ Authentication initialized")

	// 9. Moderation engine
	log.Println("\n🛡️  Step 9: Initializing moderation engine...")
	moderationEngine := moderation.NewEngine(cfg.ModerationTerms)
	moderationHandler := moderation.NewHandler(moderationEngine)
	log.Printf("✅ Moderation engine initialized with %d terms", len(cfg.ModerationTerms))

	// 10. Profile module
	log.Println("\n👤 Step 10: Initializing Profile module...")
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profile module initialized")

	// 11. Dating module (candidates, scoring, matches, starters)
	log.Println("\n💘 Step 11: Initializing Dating module...")
	datingRepo := dating.NewPostgresRepository(db)
	scorer := dating.NewScorer(cfg.Scoring)
	datingService := dating.NewService(datingRepo, scorer, bus, redisClient, cfg)
	datingHandler := dating.NewHandler(datingService)
	log.Println("✅ Dating module initialized")

	// 12. Messaging module
	log.Println("\n💬 Step 12: Initializing Messaging module...")
	messagingRepo := messaging.NewPostgresRepository(db)
	messagingService := messaging.NewService(messagingRepo, moderationEngine, bus, cfg.MaxMessageLength)
	messagingHandler := messaging.NewHandler(messagingService)
	log.Println("✅ Messaging module initialized")

	// 13. Notification module
	log.Println("\n🔔 Step 13: Initializing Notification module...")
	notificationRepo := notification.NewPostgresRepository(db)

	var pushSender notification.PushSender
	if cfg.EnablePushNotifications {
		fcmSender, err := notification.NewFCMPushSender(
			context.Background(),
			cfg.FirebaseCredentialsPath,
			cfg.FirebaseCredentialsJSON,
		)
		if err != nil {
			log.Printf("⚠️  Warning: Failed to initialize FCM push sender: %v", err)
			pushSender = notification.NewMockPushSender()
		} else {
			pushSender = fcmSender
			log.Println("   ✅ FCM push sender initialized")
		}
	} else {
		pushSender = notification.NewMockPushSender()
		log.Println("   📝 Using mock push sender (development mode)")
	}

	notificationService := notification.NewService(notificationRepo, pushSender)
	notificationHandler := notification.NewHandler(notificationService)
	log.Println("✅ Notification module initialized")

	// 14. Wire event consumers
	log.Println("\n🧩 Step 14: Wiring event consumers...")
	bus.OnMatchCreated(datingService.GenerateStarters)
	bus.OnMessageCreated(notificationService.HandleMessageCreated)
	log.Println("✅ Event consumers wired")

	// 15. Embedding module
	embeddingHandler := embedding.NewHandler()

	// 16. Routes
	log.Println("\n🛣️  Step 16: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	log.Println("   ✅ Profile routes registered")

	dating.RegisterRoutes(router, datingHandler, authMiddleware)
	log.Println("   ✅ Dating routes registered")

	messaging.RegisterRoutes(router, messagingHandler, authMiddleware)
	log.Println("   ✅ Messaging routes registered")

	notification.RegisterRoutes(router, notificationHandler, authMiddleware)
	log.Println("   ✅ Notification routes registered")

	moderation.RegisterRoutes(router, moderationHandler, authMiddleware)
	log.Println("   ✅ Moderation routes registered")

	embedding.RegisterRoutes(router, embeddingHandler, authMiddleware)
	log.Println("   ✅ Embedding routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 17. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	// Let in-flight event handlers (starter generation, push dispatch) finish.
	log.Println("   - Draining event bus...")
	bus.Wait()

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// loggingMiddleware logs every request with its duration
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("📥 %s %s (%v)", r.Method, r.RequestURI, time.Since(start))
	})
}

// corsMiddleware adds CORS headers for browser clients
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
