// Package worker implements the buffered worker pool that writes game logs
// to ClickHouse in batches. This decouples CSV parsing from database writes,
// providing:
// - Backpressure handling via load shedding (Enqueue) or blocking (EnqueueWait)
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees
package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/swishlytics/swish-api/internal/models"
)

// ErrPoolStopped is returned by EnqueueWait after Stop.
var ErrPoolStopped = errors.New("worker pool stopped")

// Prometheus metrics
var (
	logsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swish_gamelogs_enqueued_total",
		Help: "Total number of game logs accepted by the writer queue",
	})

	logsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swish_gamelogs_written_total",
		Help: "Total number of game logs written to ClickHouse",
	})

	logsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swish_gamelogs_failed_total",
		Help: "Total number of game logs that failed to write",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swish_gamelog_queue_depth",
		Help: "Current depth of the game log writer queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swish_gamelog_batch_insert_duration_seconds",
		Help:    "Duration of game log batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	logsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swish_gamelogs_load_shed_total",
		Help: "Total number of game logs dropped because the queue was full or stopped",
	})
)

const insertGameLogs = `
	INSERT INTO swish.game_logs (
		player_id, season, game_date, opponent, win_loss, minutes_played,
		points, rebounds, assists, steals, blocks, turnovers,
		field_goals_made, field_goal_attempts,
		three_pointers_made, three_point_attempts,
		free_throws_made, free_throw_attempts,
		plus_minus, ingested_at
	)`

// Job is one game log waiting to be written
type Job struct {
	Log       models.GameLog
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool manages a pool of workers that batch game logs into ClickHouse
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once

	written atomic.Int64
	failed  atomic.Int64
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop closes the queue and waits until every queued log has been flushed.
// It is safe to call more than once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("Stopping worker pool...")

		p.mu.Lock()
		p.stopped = true
		close(p.jobQueue)
		p.mu.Unlock()

		p.wg.Wait()
		if p.cancel != nil {
			p.cancel()
		}
		p.logger.Infow("Worker pool stopped", "written", p.written.Load(), "failed", p.failed.Load())
	})
}

// Enqueue adds a log to the queue without blocking. It returns false and
// sheds the log when the queue is full or the pool is stopped.
func (p *Pool) Enqueue(log models.GameLog) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		logsLoadShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- Job{Log: log, Timestamp: time.Now()}:
		logsEnqueued.Inc()
		return true
	default:
		p.logger.Warnw("Game log queue full, dropping log", "player", log.PlayerID)
		logsLoadShed.Inc()
		return false
	}
}

// EnqueueWait adds a log to the queue, blocking until there is room or ctx
// is done.
func (p *Pool) EnqueueWait(ctx context.Context, log models.GameLog) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		logsLoadShed.Inc()
		return ErrPoolStopped
	}

	select {
	case p.jobQueue <- Job{Log: log, Timestamp: time.Now()}:
		logsEnqueued.Inc()
		return nil
	case <-ctx.Done():
		logsLoadShed.Inc()
		return ctx.Err()
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// Stats returns the number of logs written and failed so far.
func (p *Pool) Stats() (written, failed int64) {
	return p.written.Load(), p.failed.Load()
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		written, err := p.processBatch(batch)
		if err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
		} else {
			p.logger.Debugw("Batch written", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
		}
		p.written.Add(int64(written))
		p.failed.Add(int64(len(batch) - written))
		logsWritten.Add(float64(written))
		logsFailed.Add(float64(len(batch) - written))
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				// Channel closed, flush remaining
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			p.logger.Infow("Context done, flushing final batch", "worker", id, "dropped", len(p.jobQueue))
			flush()
			return
		}
	}
}

// processBatch writes one batch and returns how many logs were sent.
// Logs that fail to append are skipped; a failed send loses the whole batch.
func (p *Pool) processBatch(batch []Job) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	// The pool context may already be cancelled while the final batch flushes
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertGameLogs)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	appended := 0
	for _, job := range batch {
		gl := job.Log
		err := chBatch.Append(
			gl.PlayerID,
			gl.Season,
			gl.GameDate,
			sanitizeText(gl.Opponent),
			strings.ToUpper(sanitizeText(gl.WinLoss)),
			gl.MinutesPlayed,
			gl.Points,
			gl.Rebounds,
			gl.Assists,
			gl.Steals,
			gl.Blocks,
			gl.Turnovers,
			gl.FieldGoalsMade,
			gl.FieldGoalAttempts,
			gl.ThreePointersMade,
			gl.ThreePointAttempts,
			gl.FreeThrowsMade,
			gl.FreeThrowAttempts,
			gl.PlusMinus,
			job.Timestamp,
		)
		if err != nil {
			p.logger.Warnw("Failed to append game log to batch", "error", err, "player", gl.PlayerID, "game_date", gl.GameDate)
			continue
		}
		appended++
	}

	if appended == 0 {
		chBatch.Abort()
		return 0, errors.New("no game logs could be appended")
	}
	if err := chBatch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch to ClickHouse: %w", err)
	}
	return appended, nil
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// Helper functions

// sanitizeText drops control characters and collapses runs of whitespace,
// as found in matchup strings scraped from box scores ("LAL\t@  BOS").
func sanitizeText(s string) string {
	// Fast path: nothing to clean
	clean := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == 0x7f || (c == ' ' && (i == 0 || i == len(s)-1 || s[i-1] == ' ')) || c >= 0x80 {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = sb.Len() > 0
		case unicode.IsControl(r):
			continue
		default:
			if space {
				sb.WriteByte(' ')
				space = false
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
