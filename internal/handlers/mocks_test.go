package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/swishlytics/swish-api/internal/models"
	"github.com/swishlytics/swish-api/internal/ranking"
	"github.com/swishlytics/swish-api/internal/ratelimit"
)

// Service mocks

type MockSeasonStatsService struct {
	ListSeasonsFunc    func(ctx context.Context) ([]string, error)
	GetSeasonStatsFunc func(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error)
}

func (m *MockSeasonStatsService) ListSeasons(ctx context.Context) ([]string, error) {
	if m.ListSeasonsFunc != nil {
		return m.ListSeasonsFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockSeasonStatsService) GetSeasonStats(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error) {
	if m.GetSeasonStatsFunc != nil {
		return m.GetSeasonStatsFunc(ctx, season)
	}
	return []models.PlayerSeasonRecord{}, nil
}

type MockPlayerService struct {
	GetPlayerDetailsFunc func(ctx context.Context, playerID string) (*models.PlayerDetails, error)
}

func (m *MockPlayerService) GetPlayerDetails(ctx context.Context, playerID string) (*models.PlayerDetails, error) {
	if m.GetPlayerDetailsFunc != nil {
		return m.GetPlayerDetailsFunc(ctx, playerID)
	}
	return &models.PlayerDetails{PlayerID: playerID}, nil
}

type MockProjectionService struct {
	GetProjectionsFunc func(ctx context.Context) ([]models.PlayerSeasonRecord, error)
}

func (m *MockProjectionService) GetProjections(ctx context.Context) ([]models.PlayerSeasonRecord, error) {
	if m.GetProjectionsFunc != nil {
		return m.GetProjectionsFunc(ctx)
	}
	return []models.PlayerSeasonRecord{}, nil
}

type MockGameLogService struct {
	GetGameLogsFunc func(ctx context.Context, playerID, season string, limit int) ([]models.GameLog, error)
}

func (m *MockGameLogService) GetGameLogs(ctx context.Context, playerID, season string, limit int) ([]models.GameLog, error) {
	if m.GetGameLogsFunc != nil {
		return m.GetGameLogsFunc(ctx, playerID, season, limit)
	}
	return []models.GameLog{}, nil
}

// Infrastructure mocks

type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.Err }

type MockRedisPinger struct {
	Err error
}

func (m *MockRedisPinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.Err)
}

type MockLimiter struct {
	AllowFunc func(ctx context.Context, client string) (ratelimit.Decision, error)
}

func (m *MockLimiter) Allow(ctx context.Context, client string) (ratelimit.Decision, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, client)
	}
	return ratelimit.Decision{Allowed: true}, nil
}

// newTestHandler fills any service the test did not set with an empty mock.
func newTestHandler(cfg Config) *Handler {
	if cfg.SeasonStats == nil {
		cfg.SeasonStats = &MockSeasonStatsService{}
	}
	if cfg.Players == nil {
		cfg.Players = &MockPlayerService{}
	}
	if cfg.Projections == nil {
		cfg.Projections = &MockProjectionService{}
	}
	if cfg.GameLogs == nil {
		cfg.GameLogs = &MockGameLogService{}
	}
	if cfg.Palette == (ranking.Palette{}) {
		cfg.Palette = ranking.DefaultPalette()
	}
	return New(cfg)
}

// withURLParams attaches chi path parameters given as key, value pairs.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
