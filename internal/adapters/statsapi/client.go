package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"

	"github.com/brianzzs/GreenFiveInnings/internal/domain"
	"github.com/brianzzs/GreenFiveInnings/internal/logging"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
)

const userAgent = "GreenFiveInnings/1.0"

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatsAPI is the single component aware of the MLB Stats API protocol:
// base URL, paths, query parameters and status-code meanings. Every call
// fails with one of the domain sentinel errors.
type StatsAPI interface {
	GetPlayerSeason(ctx context.Context, playerID int64, season string) (*domain.PlayerSeason, error)
	GetCareerHitting(ctx context.Context, playerID int64) (*domain.HittingStats, error)
	GetCareerPitching(ctx context.Context, playerID int64) (*domain.PitchingStats, error)
	GetRoster(ctx context.Context, teamID int64, season string) (*domain.Roster, error)
	GetSchedule(ctx context.Context, teamID int64, start, end time.Time) ([]domain.GameSummary, error)
	GetGameFeed(ctx context.Context, gamePk int64) (*domain.GameFeed, error)
	GetStandings(ctx context.Context, date string) ([]domain.TeamStanding, error)
}

type Options struct {
	BaseURL     string
	CallTimeout time.Duration
	MaxRetries  int
	BackoffBase time.Duration
	// Client-side pacing of upstream calls
	RequestsPerSecond float64
	BurstSize         int
	// Injectable for tests
	AfterFunc func(time.Duration) <-chan time.Time
}

type statsAPIImpl struct {
	httpClient  HttpClient
	baseURL     string
	callTimeout time.Duration
	maxRetries  int
	backoffBase time.Duration
	limiter     *rate.Limiter
	afterFunc   func(time.Duration) <-chan time.Time

	metrics statsAPIMetricsCollection
}

func NewStatsAPI(httpClient HttpClient, options Options) (StatsAPI, error) {
	if options.BaseURL == "" {
		options.BaseURL = "https://statsapi.mlb.com/api"
	}
	if options.CallTimeout <= 0 {
		options.CallTimeout = 5 * time.Second
	}
	if options.BackoffBase <= 0 {
		options.BackoffBase = 250 * time.Millisecond
	}
	if options.RequestsPerSecond <= 0 {
		options.RequestsPerSecond = 10
	}
	if options.BurstSize <= 0 {
		options.BurstSize = 20
	}
	if options.AfterFunc == nil {
		options.AfterFunc = time.After
	}

	meter := otel.Meter("statsapi/client")
	metrics, err := setupStatsAPIMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &statsAPIImpl{
		httpClient:  httpClient,
		baseURL:     options.BaseURL,
		callTimeout: options.CallTimeout,
		maxRetries:  options.MaxRetries,
		backoffBase: options.BackoffBase,
		limiter:     rate.NewLimiter(rate.Limit(options.RequestsPerSecond), options.BurstSize),
		afterFunc:   options.AfterFunc,

		metrics: metrics,
	}, nil
}

// getJSON issues a GET with the configured per-call timeout and decodes the
// body into out. Only rate-limit failures are retried, with exponential
// backoff; all other failures surface unchanged to the caller.
func (s *statsAPIImpl) getJSON(ctx context.Context, endpoint, url string, out any) error {
	for attempt := 0; ; attempt++ {
		err := s.doOnce(ctx, endpoint, url, out)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrRateLimited) || attempt >= s.maxRetries {
			return err
		}

		backoff := s.backoffBase << attempt
		logging.FromContext(ctx).Warn("Rate limited by upstream, backing off", "endpoint", endpoint, "attempt", attempt+1, "backoff", backoff.String())
		s.metrics.retryCount.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint", endpoint)))

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", domain.ErrCanceled, ctx.Err())
		case <-s.afterFunc(backoff):
		}
	}
}

func (s *statsAPIImpl) doOnce(ctx context.Context, endpoint, url string, out any) error {
	logger := logging.FromContext(ctx)

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCanceled, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, url, nil)
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		reporting.Report(ctx, err)
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", domain.ErrCanceled, ctx.Err())
		}
		if callCtx.Err() != nil {
			// Our own per-call deadline fired, not the caller's
			return fmt.Errorf("%w: %s took longer than %s", domain.ErrTimeout, endpoint, s.callTimeout)
		}
		err := fmt.Errorf("failed to send request: %w", err)
		reporting.Report(ctx, err)
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err := fmt.Errorf("failed to read response body: %w", err)
		reporting.Report(ctx, err)
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	logger.Info("mlb stats request completed", "endpoint", endpoint, "status", resp.StatusCode, "duration", time.Since(start).String())
	s.metrics.requestCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.Int("status", resp.StatusCode),
	))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s returned status %d", domain.ErrRateLimited, endpoint, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, endpoint)
	case resp.StatusCode != http.StatusOK:
		err := fmt.Errorf("%w: %s returned status %d", domain.ErrUpstream, endpoint, resp.StatusCode)
		reporting.Report(ctx, err, map[string]string{"status": fmt.Sprint(resp.StatusCode)})
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		err := fmt.Errorf("%w: failed to decode %s response: %w", domain.ErrMalformedResponse, endpoint, err)
		reporting.Report(ctx, err)
		return err
	}

	return nil
}

type statsAPIMetricsCollection struct {
	requestCount metric.Int64Counter
	retryCount   metric.Int64Counter
}

func setupStatsAPIMetrics(meter metric.Meter) (statsAPIMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("statsapi/client/requests")
	if err != nil {
		return statsAPIMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}
	retryCount, err := meter.Int64Counter("statsapi/client/retries")
	if err != nil {
		return statsAPIMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	return statsAPIMetricsCollection{
		requestCount: requestCount,
		retryCount:   retryCount,
	}, nil
}
