package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/hackathon-platform-backend/api"
	"github.com/rpupo63/hackathon-platform-backend/auth"
	"github.com/rpupo63/hackathon-platform-backend/config"
	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"github.com/rpupo63/hackathon-platform-backend/services"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()
	c := config.New()
	setupLogging(c)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded")
	}

	log.Info().Msg("Initializing app...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := config.GetString(c, "DATABASE_URL", "")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	gormLogger := logger.New(
		stdlog.New(log.Logger, "", 0),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := database.Open(database.Options{
		DSN:         dsn,
		ReplicaDSNs: config.GetStringSlice(c, "DATABASE_REPLICA_URLS", nil),
		Logger:      gormLogger,
		MaxOpen:     config.GetInt(c, "DATABASE_MAX_OPEN_CONNS", 0),
		MaxIdle:     config.GetInt(c, "DATABASE_MAX_IDLE_CONNS", 0),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	currentDB := database.New(db)
	if err := currentDB.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	if config.GetBool(c, "SEED_SAMPLE_DATA", false) {
		seeded, err := database.SeedSampleData(ctx, currentDB, time.Now().UTC())
		if err != nil {
			log.Fatal().Err(err).Msg("Error seeding sample data")
		}
		log.Info().Bool("seeded", seeded).Msg("sample data checked")
	}

	tokens, err := newTokenIssuer(ctx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading signing secret")
	}

	server, err := api.NewServer(currentDB, c, tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	reconciler := services.NewStatusReconciler(
		currentDB.HackathonRepo(),
		config.GetDuration(c, "STATUS_SYNC_INTERVAL_SECONDS", time.Second, 5*time.Minute),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx, 30*time.Second)
	})
	g.Go(func() error {
		return reconciler.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Closing server")
		os.Exit(1)
	}
	log.Info().Msg("Shutdown complete")
}

func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.GetString(c, "LOG_FORMAT", "console") == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// newTokenIssuer resolves the signing secret, from SSM Parameter Store when
// JWT_SECRET_SSM_PARAMETER is set.
func newTokenIssuer(ctx context.Context, c map[string]string) (*auth.TokenIssuer, error) {
	var client config.ParameterGetter
	if config.GetString(c, "JWT_SECRET_SSM_PARAMETER", "") != "" {
		ssmClient, err := config.NewSSMClient(ctx)
		if err != nil {
			return nil, err
		}
		client = ssmClient
	}

	secret, err := config.ResolveSecret(ctx, c, "JWT_SECRET", client)
	if err != nil {
		return nil, err
	}

	ttl := config.GetDuration(c, "TOKEN_TTL_MINUTES", time.Minute, 30*time.Minute)
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return auth.NewTokenIssuer(secret, ttl), nil
}
