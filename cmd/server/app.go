package main

import (
	"database/sql"
	"log/slog"
	"math/rand"
	"time"

	"github.com/ayumu838/kotoba-api/internal/config"
	"github.com/ayumu838/kotoba-api/internal/domain/srs"
	"github.com/ayumu838/kotoba-api/internal/platform/postgres"
	"github.com/ayumu838/kotoba-api/internal/service/auth"
	"github.com/ayumu838/kotoba-api/internal/service/progress"
	"github.com/ayumu838/kotoba-api/internal/service/review"
	"github.com/ayumu838/kotoba-api/internal/session"
	"github.com/ayumu838/kotoba-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	tokenVerifier   auth.TokenVerifier
	reviewService   review.Service
	progressService progress.Service
}

// newApplication wires stores and services from the given configuration and
// database handle.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	tokenVerifier, err := auth.NewTokenVerifier(cfg.Auth)
	if err != nil {
		return nil, err
	}

	deckStore := postgres.NewPostgresDeckStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)
	stateStore := postgres.NewPostgresReviewStateStore(db, logger)
	eventStore := postgres.NewPostgresReviewEventStore(db, logger)

	srsService := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:        cfg.SRS.MinEaseFactor,
		FirstInterval:        cfg.SRS.FirstInterval,
		SecondIntervalNormal: cfg.SRS.SecondIntervalNormal,
		SecondIntervalEasy:   cfg.SRS.SecondIntervalEasy,
	}))

	quizBuilder := session.NewQuizBuilder(rand.New(rand.NewSource(time.Now().UnixNano())))

	reviewService := review.NewService(
		store.NewSQLTxRunner(db),
		deckStore,
		cardStore,
		stateStore,
		eventStore,
		srsService,
		quizBuilder,
		logger,
	)

	progressService := progress.NewService(
		deckStore,
		cardStore,
		stateStore,
		eventStore,
		logger,
	)

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		tokenVerifier:   tokenVerifier,
		reviewService:   reviewService,
		progressService: progressService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
