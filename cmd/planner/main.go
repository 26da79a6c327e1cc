package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"transit-route-service/internal/adapters/directory"
	"transit-route-service/internal/adapters/schedule"
	"transit-route-service/internal/config"
	"transit-route-service/internal/format"
	"transit-route-service/internal/ports"
	"transit-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Rasp API, directory caches) behind ports and
// runs a single planning request: this is a one-shot planner, not a service.
func main() {
	if os.Getenv("PLANNER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("PLANNER_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found (using environment variables)")
	}

	app := &cli.App{
		Name:  "planner",
		Usage: "plan a multi-leg transit itinerary between two cities",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "origin city name", Required: true},
			&cli.StringFlag{Name: "to", Usage: "destination city name", Required: true},
			&cli.StringFlag{Name: "via", Usage: "mandatory transfer city (selects combined planning)"},
			&cli.StringFlag{Name: "date", Usage: "departure date (YYYY-MM-DD)", Required: true},
			&cli.IntFlag{Name: "top", Usage: "number of itineraries to return", Value: 3},
		},
		Action: plan,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func plan(c *cli.Context) error {
	from := strings.TrimSpace(c.String("from"))
	to := strings.TrimSpace(c.String("to"))
	via := strings.TrimSpace(c.String("via"))
	date := strings.TrimSpace(c.String("date"))
	topN := c.Int("top")

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	if topN < 1 {
		return fmt.Errorf("top must be at least 1")
	}

	apiKey := os.Getenv("RASP_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("RASP_API_KEY is required")
	}

	provider, err := schedule.NewRaspProvider(apiKey)
	if err != nil {
		return err
	}

	transferCities, err := loadTransferCities()
	if err != nil {
		return err
	}

	ctx := c.Context

	cache, closeCache, err := openDirectoryCache(ctx)
	if err != nil {
		return err
	}
	if closeCache != nil {
		defer closeCache()
	}

	// The directory must be fully loaded before any search begins.
	dir, err := directory.Load(ctx, provider, cache)
	if err != nil {
		return fmt.Errorf("load city directory: %w", err)
	}
	log.Debug().Int("cities", dir.Len()).Msg("city directory loaded")

	routes := services.NewRouteSearch(provider, dir, transferCities)

	if via != "" {
		planner := services.NewCombinedPlanner(routes)
		candidates := planner.FindCombinedRoutes(ctx, from, via, to, date, topN)
		if len(candidates) == 0 {
			fmt.Printf("No combined route found from %s via %s to %s.\n", from, via, to)
			return nil
		}

		fmt.Println("Found combined route:")
		fmt.Println(format.Combined(candidates[0], from, via, to))
		return nil
	}

	candidates := routes.FindBestRoutes(ctx, from, to, date, topN, nil)
	if len(candidates) == 0 {
		fmt.Printf("No route found from %s to %s.\n", from, to)
		return nil
	}

	for i, candidate := range candidates {
		fmt.Printf("Option %d:\n", i+1)
		fmt.Println(format.Candidate(candidate, from, to))
		fmt.Println(strings.Repeat("-", 40))
	}

	return nil
}

func loadTransferCities() ([]string, error) {
	path := config.Get("TRANSFER_CITIES_PATH", "config/transfer_cities.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug().Str("path", path).Msg("transfer city file not found, using built-in list")
		return config.DefaultTransferCities, nil
	}
	return config.LoadTransferCities(path)
}

// openDirectoryCache picks a cache backend from the environment:
// DATABASE_URL selects Postgres, REDIS_URL selects Redis, neither disables
// caching. The returned close func releases the backend connection.
func openDirectoryCache(ctx context.Context) (ports.DirectoryCache, func(), error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		db, err := openDB(databaseURL)
		if err != nil {
			return nil, nil, err
		}

		cache := directory.NewPGDirectoryCache(db)
		if err := cache.InitSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		return cache, func() { db.Close() }, nil
	}

	if redisURL := os.Getenv("REDIS_URL"); strings.TrimSpace(redisURL) != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}

		client := redis.NewClient(opts)
		cache := directory.NewRedisDirectoryCache(client, 0)

		return cache, func() { client.Close() }, nil
	}

	return nil, nil, nil
}

func openDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
