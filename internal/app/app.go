// Package app builds the long-lived dependencies shared by the API server
// and packctl from a loaded config.Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/packvision/internal/ai"
	"github.com/pkordes/packvision/internal/config"
	"github.com/pkordes/packvision/internal/repo"
	"github.com/pkordes/packvision/internal/store"
	"github.com/pkordes/packvision/internal/weather"
	"github.com/pkordes/packvision/migrations"
)

// GeocodeCacheTTL is how long a resolved destination is reused.
const GeocodeCacheTTL = 24 * time.Hour

// LoadDotenv loads variables from path into the environment without
// overriding ones already set. A missing file is only an error when
// required; a file that exists but cannot be read or parsed always is.
func LoadDotenv(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil || (!required && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("app.LoadDotenv %s: %w", path, err)
}

// NewLogger returns a JSON slog logger at the configured level. Unknown
// levels fall back to info.
func NewLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

// OpenStore connects the configured storage driver and returns the typed
// store on top of it. The returned func releases the connection. Postgres
// is migrated before use.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		applied, err := Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.InfoContext(ctx, "database ready", slog.Int("migrations_applied", len(applied)))
		return store.New(repo.NewPostgresKV(pool)), pool.Close, nil

	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("app.OpenStore: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("app.OpenStore: ping redis: %w", err)
		}
		log.InfoContext(ctx, "redis ready", slog.String("addr", opts.Addr))
		return store.New(repo.NewRedisKV(client, repo.DefaultRedisPrefix)), func() { client.Close() }, nil

	default:
		log.WarnContext(ctx, "using in-memory store; state is lost on restart")
		return store.New(repo.NewMemoryKV()), func() {}, nil
	}
}

// OpenPostgres creates a pgx pool and checks the database is reachable.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("app.OpenPostgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("app.OpenPostgres: ping: %w", err)
	}
	return pool, nil
}

// Migrate applies pending migrations through a database/sql view of pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("app.Migrate: %w", err)
	}
	return applied, nil
}

// NewAIClient returns a Gemini-backed client, or one whose calls all fail
// with domain.ErrAINotConfigured when no key is set.
func NewAIClient(ctx context.Context, cfg *config.Config, log *slog.Logger) (*ai.Client, error) {
	var provider ai.Provider = ai.Unconfigured{}
	if cfg.GeminiAPIKey != "" {
		g, err := ai.NewGemini(ctx, ai.GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			TextModel:   cfg.GeminiTextModel,
			VisionModel: cfg.GeminiVisionModel,
		})
		if err != nil {
			return nil, fmt.Errorf("app.NewAIClient: %w", err)
		}
		provider = g
	} else {
		log.WarnContext(ctx, "GEMINI_API_KEY not set; AI endpoints will answer 401")
	}
	return ai.NewClient(provider, ai.WithLogger(log)), nil
}

// NewWeather wires geocoding and the forecast providers. OpenWeatherMap is
// the primary source when a key is configured; Open-Meteo is always the
// fallback.
func NewWeather(cfg *config.Config, log *slog.Logger) *weather.Service {
	geocoder := weather.NewCachedGeocoder(
		weather.NewOpenMeteoGeocoder(weather.DefaultGeocodingURL, nil),
		GeocodeCacheTTL,
	)

	var primary weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		primary = weather.NewOpenWeatherMap(cfg.OpenWeatherAPIKey, weather.DefaultOpenWeatherURL, nil)
	}
	return weather.NewService(geocoder, primary, weather.NewOpenMeteo(weather.DefaultOpenMeteoURL, nil), log)
}
