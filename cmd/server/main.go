package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"signquiz-backend/internal/config"
	"signquiz-backend/internal/database"
	"signquiz-backend/internal/fallback"
	"signquiz-backend/internal/handlers"
	"signquiz-backend/internal/middleware"
	"signquiz-backend/internal/repository"
	"signquiz-backend/internal/router"
	"signquiz-backend/internal/services"
	"signquiz-backend/internal/websocket"
	"signquiz-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting SignQuiz Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Load Fallback Content ────
	content := fallback.Demo()
	if cfg.FallbackContentPath != "" {
		loaded, err := fallback.Load(cfg.FallbackContentPath)
		if err != nil {
			log.Fatalf("✗ Fallback content failed to load: %v", err)
		}
		content = loaded
	}
	log.Println("✓ Fallback content loaded")

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// ──── Step 3: Initialize PostgreSQL Connection Pool ────
	// The app stays usable on demo content when the database is down.
	pool, err := database.NewPostgresPool(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("✗ PostgreSQL connection failed, serving fallback content: %v", err)
	} else {
		defer pool.Close()
		log.Println("✓ PostgreSQL connected")

		// ──── Step 4: Run Database Migrations ────
		if err := database.RunMigrations(startupCtx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		log.Println("✓ Database migrations applied")
	}

	// ──── Step 5: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(startupCtx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Initialize Repositories ────
	categoryRepo, questionRepo, progressReader, eventWriter := repositories(pool)

	// ──── Initialize Services ────
	catalog := services.NewCatalogProvider(categoryRepo, content)
	bank := services.NewQuestionBank(questionRepo, content)
	progressStore := services.NewProgressStore(progressReader, services.NewRedisJobQueue(redisClients.Queue), content)
	sessions := services.NewRedisSessionStore(redisClients.Queue, cfg.SessionTTL)
	notifier := services.NewNotifier(redisClients.Queue)

	quizService := services.NewQuizService(bank, sessions, progressStore, cfg.RecordCompletions)
	progressService := services.NewProgressService(catalog, bank, progressStore, cfg.RecentActivityLimit)

	// ──── Initialize Handlers ────
	categoryHandler := handlers.NewCategoryHandler(catalog, bank)
	quizHandler := handlers.NewQuizHandler(quizService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// ──── Step 6: Start Progress Worker Pool ────
	workerPool := worker.NewPool(redisClients.Queue, eventWriter, notifier, cfg.WorkerCount)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.DefaultUserID)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	startLimiter := middleware.NewRateLimiter(30, time.Minute)
	defer startLimiter.Stop()

	r := router.New(
		categoryHandler,
		quizHandler,
		progressHandler,
		startLimiter,
		wsHub,
		cfg.FrontendURL,
		cfg.DefaultUserID,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)

		wsHub.Close()
		workerPool.Stop()
	}()

	log.Printf("✓ SignQuiz Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	<-done
}

// repositories returns untyped nils when there is no pool so providers see a
// nil interface and go straight to fallback content.
func repositories(pool *pgxpool.Pool) (services.CategoryLister, services.QuestionLister, services.ProgressReader, worker.EventWriter) {
	if pool == nil {
		return nil, nil, nil, nil
	}
	progressRepo := repository.NewProgressRepo(pool)
	return repository.NewCategoryRepo(pool), repository.NewQuestionRepo(pool), progressRepo, progressRepo
}
