package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/cache"
	"github.com/brianzzs/GreenFiveInnings/internal/adapters/statsapi"
	"github.com/brianzzs/GreenFiveInnings/internal/app"
	"github.com/brianzzs/GreenFiveInnings/internal/config"
	"github.com/brianzzs/GreenFiveInnings/internal/ports"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
	"github.com/brianzzs/GreenFiveInnings/internal/telemetry"
)

func main() {
	instanceID := uuid.New().String()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	otelShutdown, err := telemetry.SetupOTelSDK(context.Background(), "greenfiveinnings")
	if err != nil {
		fail("Failed to set up OpenTelemetry", "error", err.Error())
	}
	defer otelShutdown(context.Background())

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	store := cache.NewTTLCache[any](config.CacheCapacity())

	engine, err := app.NewEngine(store)
	if err != nil {
		fail("Failed to initialize engine", "error", err.Error())
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		// Backstop only; the per-call deadline in the client governs
		Timeout: config.UpstreamTimeout() + 5*time.Second,
	}
	mlbAPI, err := statsapi.NewStatsAPI(httpClient, statsapi.Options{
		BaseURL:           config.MLBAPIURL(),
		CallTimeout:       config.UpstreamTimeout(),
		MaxRetries:        config.UpstreamMaxRetries(),
		BackoffBase:       config.UpstreamBackoffBase(),
		RequestsPerSecond: config.UpstreamRequestsPerSecond(),
		BurstSize:         config.UpstreamBurstSize(),
	})
	if err != nil {
		fail("Failed to initialize MLB Stats API client", "error", err.Error())
	}
	logger.Info("Initialized MLB Stats API client")

	ttlClasses := app.TTLClasses{
		LiveFeed:    config.LiveFeedTTL(),
		Schedule:    config.ScheduleTTL(),
		Standings:   config.StandingsTTL(),
		SeasonStats: config.SeasonStatsTTL(),
		Roster:      config.RosterTTL(),
	}

	getPlayerSeason := app.BuildGetPlayerSeason(engine, mlbAPI, ttlClasses)
	comparePlayers := app.BuildComparePlayers(engine, mlbAPI, ttlClasses)
	getRosterWithStats := app.BuildGetRosterWithStats(engine, mlbAPI, ttlClasses)
	getTeamSchedule := app.BuildGetTeamSchedule(engine, mlbAPI, ttlClasses, time.Now)
	getGamePreview := app.BuildGetGamePreview(engine, mlbAPI, ttlClasses)
	getStandings := app.BuildGetStandings(engine, mlbAPI, ttlClasses)

	http.HandleFunc(
		"GET /v1/players/{playerID}/season/{season}",
		ports.MakeGetPlayerSeasonHandler(
			getPlayerSeason,
			logger.With("port", "player_season"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"GET /v1/players/compare",
		ports.MakeComparePlayersHandler(
			comparePlayers,
			logger.With("port", "compare_players"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"GET /v1/teams/{teamID}/roster/{season}",
		ports.MakeGetRosterHandler(
			getRosterWithStats,
			logger.With("port", "roster"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"GET /v1/teams/{teamID}/schedule",
		ports.MakeGetScheduleHandler(
			getTeamSchedule,
			logger.With("port", "schedule"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"GET /v1/games/{gamePk}/preview",
		ports.MakeGetGamePreviewHandler(
			getGamePreview,
			logger.With("port", "game_preview"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"GET /v1/standings",
		ports.MakeGetStandingsHandler(
			getStandings,
			logger.With("port", "standings"),
			sentryMiddleware,
		),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", config.Port()), nil)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
