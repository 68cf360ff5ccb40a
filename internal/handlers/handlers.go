package handlers

import (
	"context"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/swishlytics/swish-api/internal/logic"
	"github.com/swishlytics/swish-api/internal/ranking"
	"github.com/swishlytics/swish-api/internal/ratelimit"
)

// Pinger is satisfied by *pgxpool.Pool and driver.Conn.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// RateLimiter decides whether a client may make another request.
type RateLimiter interface {
	Allow(ctx context.Context, client string) (ratelimit.Decision, error)
}

type Config struct {
	Postgres   Pinger
	ClickHouse Pinger
	Redis      RedisPinger
	Logger     *zap.Logger
	Limiter    RateLimiter
	Palette    ranking.Palette
	// ProjectionSeason labels the projections table
	ProjectionSeason string
	// Services
	SeasonStats logic.SeasonStatsService
	Players     logic.PlayerService
	Projections logic.ProjectionService
	GameLogs    logic.GameLogService
}

type Handler struct {
	pg               Pinger
	ch               Pinger
	redis            RedisPinger
	logger           *zap.SugaredLogger
	validator        *validator.Validate
	limiter          RateLimiter
	palette          ranking.Palette
	projectionSeason string
	seasonStats      logic.SeasonStatsService
	players          logic.PlayerService
	projections      logic.ProjectionService
	gameLogs         logic.GameLogService
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		pg:               cfg.Postgres,
		ch:               cfg.ClickHouse,
		redis:            cfg.Redis,
		logger:           logger.Sugar(),
		validator:        newValidator(),
		limiter:          cfg.Limiter,
		palette:          cfg.Palette,
		projectionSeason: cfg.ProjectionSeason,
		seasonStats:      cfg.SeasonStats,
		players:          cfg.Players,
		projections:      cfg.Projections,
		gameLogs:         cfg.GameLogs,
	}
}

var seasonPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// validSeason accepts labels like "2024-25" where the suffix is the next year.
func validSeason(s string) bool {
	m := seasonPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return (start+1)%100 == end
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Only fails if the tag is registered twice with a bad name
	_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		return validSeason(fl.Field().String())
	})
	return v
}
