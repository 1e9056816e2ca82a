package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"github.com/antigravity/transit-profile/config"
	"github.com/antigravity/transit-profile/internal/cache"
	"github.com/antigravity/transit-profile/internal/handler"
	"github.com/antigravity/transit-profile/internal/migrations"
	"github.com/antigravity/transit-profile/internal/profile"
	"github.com/antigravity/transit-profile/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading config:", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Postgres.DSN())
	if err != nil {
		log.Fatal("unable to create connection pool:", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("unable to connect to database:", err)
	}
	log.Println("connected to Postgres")

	if err := migrations.Up(cfg.Postgres.DSN()); err != nil {
		log.Fatal("applying migrations:", err)
	}

	redisClient, err := cache.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		log.Printf("redis unavailable, journey caching disabled: %v", err)
	}
	var journeyCache *cache.JourneyCache
	if redisClient != nil {
		journeyCache = cache.NewJourneyCache(redisClient, cfg.Redis.TTL)
	}

	stationRepo := repository.NewStationRepository(pool)
	networkRepo := repository.NewNetworkRepository(pool)

	newEngine := func() (*profile.Engine, error) {
		conns, err := networkRepo.LoadConnections(context.Background())
		if err != nil {
			return nil, fmt.Errorf("loading connections: %w", err)
		}
		footpaths, err := networkRepo.LoadFootpaths(context.Background())
		if err != nil {
			return nil, fmt.Errorf("loading footpaths: %w", err)
		}
		return profile.New(conns, footpaths)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	journeyHandler := handler.NewJourneyHandler(journeyCache, newEngine)
	stationHandler := handler.NewStationHandler(stationRepo)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"transit-profile"}`))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, `{"status":"error","db":"disconnected"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","db":"connected"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/journeys", journeyHandler.Search)
		r.Get("/stations/by-name", stationHandler.ByName)
		r.Get("/stations/nearest", stationHandler.Nearest)
	})

	addr := cfg.Server.ServerAddr()
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	log.Printf("server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
