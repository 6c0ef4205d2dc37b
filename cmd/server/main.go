package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-marketplace/internal/config"
	"github.com/iliyamo/course-marketplace/internal/database"
	"github.com/iliyamo/course-marketplace/internal/handler"
	"github.com/iliyamo/course-marketplace/internal/middleware"
	"github.com/iliyamo/course-marketplace/internal/queue"
	"github.com/iliyamo/course-marketplace/internal/repository"
	"github.com/iliyamo/course-marketplace/internal/router"
	"github.com/iliyamo/course-marketplace/internal/service"
	"github.com/iliyamo/course-marketplace/internal/storage"
)

func main() {
	// Load a local .env when present; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.NewGCSStore(ctx)
	cancel()
	if err != nil {
		log.Fatalf("object store: %v", err)
	}
	defer store.Close()

	// Redis is optional: a nil client disables the cache and rate-limit
	// middlewares.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	sectionRepo := repository.NewSectionRepo(db)
	lessonRepo := repository.NewLessonRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)
	progressRepo := repository.NewProgressRepo(db)

	resolver := service.NewLessonAccessResolver(lessonRepo, courseRepo, enrollmentRepo, store)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	authorHandler := handler.NewAuthorHandler(cfg, courseRepo, sectionRepo, lessonRepo, store)
	studentHandler := handler.NewStudentHandler(courseRepo, lessonRepo, enrollmentRepo, progressRepo, resolver)
	publicHandler := &handler.PublicHandler{CourseRepo: courseRepo, SectionRepo: sectionRepo, LessonRepo: lessonRepo}

	// Background consumer that mirrors enrollment events into
	// logs/enrollment.log. Runs its own reconnect loop.
	go func() {
		if err := queue.StartEnrollmentConsumer(); err != nil {
			log.Printf("enrollment consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterAuthor(e, authorHandler, cfg.JWTSecret)
	router.RegisterStudent(e, studentHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
