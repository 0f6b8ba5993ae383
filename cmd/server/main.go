package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizarena/internal/cache"
	"quizarena/internal/config"
	"quizarena/internal/repository"
	"quizarena/internal/service"
	"quizarena/internal/transport/rest"
	"quizarena/internal/trivia"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories and caches
	userRepo := repository.NewUserRepo(db)
	quizRepo := repository.NewQuizRepo(db)
	snapshotCache := cache.NewSessionCache(rdb, 45*time.Minute)

	// Trivia question source
	triviaClient := trivia.NewClient(cfg.TriviaBaseURL)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	quizSvc := service.NewQuizService(quizRepo, userRepo, triviaClient, snapshotCache)

	// Create router with container
	container := &rest.Container{
		AuthService: authSvc,
		QuizService: quizSvc,
		CORS: rest.CORSOptions{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: cfg.CORSAllowedMethods,
			AllowedHeaders: cfg.CORSAllowedHeaders,
		},
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/auth/signup")
		log.Println("  POST /api/auth/login")
		log.Println("  GET  /api/auth/user")
		log.Println("  POST /api/quiz/start")
		log.Println("  POST /api/quiz/answer")
		log.Println("  POST /api/quiz/visit")
		log.Println("  GET  /api/quiz/status/{sessionId}")
		log.Println("  GET  /api/quiz/session/{sessionId}")
		log.Println("  POST /api/quiz/submit")
		log.Println("  GET  /api/quiz/history")
		log.Println("  GET  /api/quiz/results/{sessionId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
