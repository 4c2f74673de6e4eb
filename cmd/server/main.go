package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"campus-nav-service/internal/adapters/cache"
	"campus-nav-service/internal/adapters/campusapi"
	"campus-nav-service/internal/adapters/repositories"
	"campus-nav-service/internal/adapters/speech"
	"campus-nav-service/internal/api"
	"campus-nav-service/internal/api/handlers"
	"campus-nav-service/internal/nav"
	"campus-nav-service/internal/platform/db"
	"campus-nav-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, campus API, Redis/Postgres caches)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/places.json")

	baseURL := os.Getenv("CAMPUS_API_BASE_URL")
	if strings.TrimSpace(baseURL) == "" {
		log.Fatal("CAMPUS_API_BASE_URL is required")
	}
	authToken := os.Getenv("CAMPUS_API_TOKEN")

	sqliteDB, err := openSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed the place directory on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	placeCache, err := buildPlaceCache(sqliteDB)
	if err != nil {
		log.Fatal(err)
	}

	client, err := campusapi.NewClient(baseURL, authToken, placeCache)
	if err != nil {
		log.Fatal(err)
	}

	// Place search defaults to the local directory; PLACE_SOURCE=remote
	// sends queries to the campus backend instead (cached).
	var searcher ports.PlaceSearcher = repositories.NewSqlitePlaceRepository(sqliteDB)
	if getEnv("PLACE_SOURCE", "local") == "remote" {
		searcher = client
	}

	registry := handlers.NewSessionRegistry(client, speech.NewLogEngine(), nav.Config{})
	defer registry.CloseAll()

	router := api.NewRouter(searcher, registry)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openSqlite(dbPath string) (*sql.DB, error) {
	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}

	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqliteDB, nil
}

func initAndSeed(sqliteDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqliteDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	// A missing seed file is an empty directory, not a startup failure.
	if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("seed file %q not found, starting with an empty place directory", seedPath)
			return nil
		}
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// buildPlaceCache picks the search-cache backend. Local single-instance
// runs use the embedded SQLite database; multi-instance deployments point
// CACHE_BACKEND at redis or postgres.
func buildPlaceCache(sqliteDB *sql.DB) (ports.PlaceCache, error) {
	switch backend := getEnv("CACHE_BACKEND", "sqlite"); backend {
	case "none":
		return nil, nil
	case "sqlite":
		return cache.NewSqlitePlaceCache(sqliteDB), nil
	case "redis":
		addr := getEnv("REDIS_ADDR", "localhost:6379")
		return cache.NewRedisPlaceCache(redis.NewClient(&redis.Options{Addr: addr})), nil
	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, fmt.Errorf("CACHE_BACKEND=postgres requires DATABASE_URL")
		}
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		if err := cache.InitPostgresSchema(pg); err != nil {
			return nil, err
		}
		return cache.NewSQLPlaceCache(pg), nil
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", backend)
	}
}
