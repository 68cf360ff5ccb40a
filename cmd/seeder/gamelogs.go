package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/swishlytics/swish-api/internal/config"
	"github.com/swishlytics/swish-api/internal/pipeline"
	"github.com/swishlytics/swish-api/internal/worker"
)

var gameLogFilePattern = regexp.MustCompile(`^(\d+)_(\d{4}-\d{2})\.csv$`)

// gameLogFile is one <nba_player_id>_<season>.csv export.
type gameLogFile struct {
	path        string
	nbaPlayerID int64
	season      string
}

func parseGameLogFilename(name string) (gameLogFile, bool) {
	m := gameLogFilePattern.FindStringSubmatch(name)
	if m == nil {
		return gameLogFile{}, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return gameLogFile{}, false
	}
	return gameLogFile{path: name, nbaPlayerID: id, season: m[2]}, true
}

type gameLogLoader struct {
	db     *sql.DB
	ch     driver.Conn
	cfg    *config.Config
	logger *zap.Logger
	dryRun bool

	playerIDs map[int64]string
}

func (l *gameLogLoader) loadDir(ctx context.Context, dir string) error {
	sugar := l.logger.Sugar()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var files []gameLogFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, ok := parseGameLogFilename(e.Name())
		if !ok {
			sugar.Warnw("Skipping file with unexpected name", "file", e.Name())
			continue
		}
		f.path = filepath.Join(dir, e.Name())
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })

	var pool *worker.Pool
	if !l.dryRun {
		pool = worker.NewPool(worker.PoolConfig{
			WorkerCount:   l.cfg.WorkerCount,
			QueueSize:     l.cfg.QueueSize,
			BatchSize:     l.cfg.BatchSize,
			FlushInterval: l.cfg.FlushInterval,
			ClickHouse:    l.ch,
			Logger:        l.logger,
		})
		pool.Start(ctx)
	}

	parsed := 0
	for _, f := range files {
		n, err := l.loadFile(ctx, pool, f)
		if err != nil {
			if pool != nil {
				pool.Stop()
			}
			return err
		}
		parsed += n
	}

	if pool == nil {
		sugar.Infow("Dry run, parsed game logs", "files", len(files), "games", parsed)
		return nil
	}
	pool.Stop()
	written, failed := pool.Stats()
	sugar.Infow("Game logs loaded", "files", len(files), "games", parsed, "written", written, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d game logs failed to write", failed, parsed)
	}
	return nil
}

func (l *gameLogLoader) loadFile(ctx context.Context, pool *worker.Pool, f gameLogFile) (int, error) {
	playerID := strconv.FormatInt(f.nbaPlayerID, 10)
	if !l.dryRun {
		id, ok, err := l.resolvePlayer(ctx, f.nbaPlayerID)
		if err != nil {
			return 0, err
		}
		if !ok {
			l.logger.Sugar().Warnw("Skipping game logs for unknown player, seed seasons first", "nba_player_id", f.nbaPlayerID)
			return 0, nil
		}
		playerID = id
	}

	file, err := os.Open(f.path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	defer file.Close()

	logs, err := pipeline.LoadGameLogCSV(file, playerID, f.season)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	if pool == nil {
		return len(logs), nil
	}
	for _, gl := range logs {
		if err := pool.EnqueueWait(ctx, gl); err != nil {
			return 0, fmt.Errorf("failed to queue game log: %w", err)
		}
	}
	return len(logs), nil
}

// resolvePlayer maps an NBA id to the stored player uuid, caching hits.
func (l *gameLogLoader) resolvePlayer(ctx context.Context, nbaPlayerID int64) (string, bool, error) {
	if id, ok := l.playerIDs[nbaPlayerID]; ok {
		return id, true, nil
	}
	if l.playerIDs == nil {
		l.playerIDs = make(map[int64]string)
	}

	var id string
	err := l.db.QueryRowContext(ctx, `SELECT player_id::text FROM players WHERE nba_player_id = $1`, nbaPlayerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve player %d: %w", nbaPlayerID, err)
	}
	l.playerIDs[nbaPlayerID] = id
	return id, true, nil
}
