package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/propscout/hmo-app/internal/admin"
	"github.com/propscout/hmo-app/internal/area"
	"github.com/propscout/hmo-app/internal/article4"
	"github.com/propscout/hmo-app/internal/config"
	"github.com/propscout/hmo-app/internal/geocode"
	"github.com/propscout/hmo-app/internal/health"
	"github.com/propscout/hmo-app/internal/listings"
	"github.com/propscout/hmo-app/internal/official"
	"github.com/propscout/hmo-app/internal/planning"
	"github.com/propscout/hmo-app/internal/pool"
	"github.com/propscout/hmo-app/internal/server"
)

var configPath string

func main() {
	flag.StringVar(&configPath, "c", "", "optional config file path")
	flag.Parse()

	// Missing .env is fine, the environment covers it.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	checkStore := article4.NewStore(db)
	listingStore := listings.NewStore(db)
	for _, ensure := range []func(context.Context) error{
		checkStore.EnsureSchema,
		listingStore.EnsureSchema,
		func(ctx context.Context) error { return admin.EnsureSchema(ctx, db) },
	} {
		if err := ensure(ctx); err != nil {
			logger.Fatal().Err(err).Msg("cannot ensure schema")
		}
	}

	areaStore := area.NewStore(&planning.Client{
		FeedURL:   cfg.AreaFeedURL,
		UserAgent: "hmo-app",
	}, cfg.AreaCacheFile, logger)
	if err := areaStore.Init(ctx); err != nil {
		// The geographic step degrades to the other sources.
		logger.Warn().Err(err).Msg("area store not primed")
	}

	workerPool := pool.New(10, 100)
	workerPool.Start()

	checks := &article4.Service{
		Official: official.NewClient(cfg.OfficialAPIURL, cfg.OfficialAPIKey),
		Store:    checkStore,
		Geocoder: geocode.New(
			geocode.NewPostcodesClient(cfg.PostcodesURL),
			geocode.NewNominatimClient(cfg.NominatimURL),
			logger,
		),
		Areas:    areaStore,
		Resolver: &area.Resolver{Logger: logger},
		Cache:    article4.NewResultCache(cfg.RedisAddr, logger),
		Pool:     workerPool,
		Logger:   logger,
	}

	srv := server.Server{
		Addr:     cfg.Port,
		Router:   chi.NewRouter(),
		Interval: cfg.RefreshInterval,
		Logger:   logger,
		Checks:   checks,
		Areas:    areaStore,
		Health: health.NewReporter(
			cfg.HasOfficialAPI(),
			checkStore,
			areaStore,
			cfg.PostcodesURL,
			logger,
		),
		Listings: listings.New(listingStore, checks, logger),
		Admins:   admin.New([]byte(cfg.AdminSecret), db),
	}
	if err := srv.Start(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}
