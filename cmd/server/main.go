package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/exam-seating-planner/internal/allocator"
	"github.com/iliyamo/exam-seating-planner/internal/config"
	"github.com/iliyamo/exam-seating-planner/internal/database"
	"github.com/iliyamo/exam-seating-planner/internal/handler"
	"github.com/iliyamo/exam-seating-planner/internal/middleware"
	"github.com/iliyamo/exam-seating-planner/internal/queue"
	"github.com/iliyamo/exam-seating-planner/internal/render"
	"github.com/iliyamo/exam-seating-planner/internal/repository"
	"github.com/iliyamo/exam-seating-planner/internal/router"
	"github.com/iliyamo/exam-seating-planner/internal/seating"
	"github.com/iliyamo/exam-seating-planner/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database: migrate: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable, running without cache and rate limit")
	} else {
		defer rdb.Close()
	}

	students := repository.NewStudentRepo(db)
	halls := repository.NewHallRepo(db)
	plans := repository.NewPlanRepo(db)
	alloc := allocator.NewClient(cfg.Allocator.URL, cfg.Allocator.Timeout)

	svc := seating.NewService(students, halls, plans, alloc, render.Options{
		LinesPerPage: cfg.Render.LinesPerPage,
		MaxLineWidth: cfg.Render.MaxLineWidth,
	})

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.Events.Enabled {
		events = service.NewRabbitPublisher(cfg.Events.URL, cfg.Events.Queue)
		consumer := &queue.Consumer{URL: cfg.Events.URL, Queue: cfg.Events.Queue, LogPath: cfg.Events.LogPath}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("plan-consumer: stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())

	rl := config.LoadRateLimitConfig()
	cc := config.LoadCacheConfig()
	limit := middleware.NewTokenBucket(rl, rdb)

	router.RegisterRoutes(e, handler.Health(db, handler.PingFunc(alloc.Ping)))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, repository.NewAdminRepo(db), repository.NewTokenRepo(db)), cfg.JWTSecret, limit)
	router.RegisterAdmin(e, router.Handlers{
		Students: handler.NewStudentHandler(students),
		Halls:    handler.NewHallHandler(halls),
		Plans:    handler.NewPlanHandler(svc, events),
		Stats:    handler.NewStatsHandler(students, halls, plans),
	}, cfg.JWTSecret, router.Middleware{
		RateLimit:     limit,
		GenerateLimit: middleware.NewTokenBucket(rl.WithCapacity(rl.GenerateCapacity).WithPrefix(rl.Prefix+":gen"), rdb),
		Cache:         middleware.NewRedisCache(cc, rdb),
		Purger:        middleware.NewCachePurger(cc, rdb),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
