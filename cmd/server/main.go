package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"blogplatform/backend/internal/config"
	"blogplatform/backend/internal/httpserver"
	"blogplatform/backend/internal/infrastructure/postgres"
	"blogplatform/backend/internal/infrastructure/token"
	authusecase "blogplatform/backend/internal/usecase/auth"
	blogusecase "blogplatform/backend/internal/usecase/blog"
	commentusecase "blogplatform/backend/internal/usecase/comment"
	likeusecase "blogplatform/backend/internal/usecase/like"
	notificationusecase "blogplatform/backend/internal/usecase/notification"
	userusecase "blogplatform/backend/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.JWTIssuer)

	userRepo := postgres.NewUserRepository(db.Pool)
	postRepo := postgres.NewPostRepository(db.Pool)
	commentRepo := postgres.NewCommentRepository(db.Pool)
	likeRepo := postgres.NewLikeRepository(db.Pool)
	notificationRepo := postgres.NewNotificationRepository(db.Pool)
	blacklistRepo := postgres.NewTokenBlacklistRepository(db.Pool)
	refreshRepo := postgres.NewRefreshTokenRepository(db.Pool)

	server := httpserver.NewServer(cfg, httpserver.Services{
		Auth:         authusecase.NewService(userRepo, blacklistRepo, refreshRepo, tokenManager),
		User:         userusecase.NewService(userRepo),
		Blog:         blogusecase.NewService(postRepo, userRepo),
		Comment:      commentusecase.NewService(commentRepo, postRepo, notificationRepo),
		Like:         likeusecase.NewService(likeRepo, postRepo, notificationRepo),
		Notification: notificationusecase.NewService(notificationRepo),
	})
	log.Printf("HTTP server listening on %s", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server closed: %v", err)
				return
			}
			log.Fatalf("server error: %v", err)
		}
		log.Printf("HTTP server stopped accepting new connections")
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v\n", err)
	} else {
		log.Printf("graceful shutdown completed")
	}
}
