package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/imdbsql/internal/core"
	"github.com/JonMunkholm/imdbsql/internal/logging"
)

// Options configures a load.
type Options struct {
	Truncate bool     // Empty each table before copying into it
	Tables   []string // Output keys to load; empty means all
}

// LoadResult contains the result of loading one table.
type LoadResult struct {
	Key      string
	FileName string
	Rows     int64
	Skipped  bool // The output file was not present
	Duration time.Duration
}

// Loader copies output files into PostgreSQL.
type Loader struct {
	pool *pgxpool.Pool
}

// New creates a Loader on an existing pool.
func New(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

// Connect opens a pool to databaseURL and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Loader, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database url is required")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return New(pool), nil
}

// Close releases the pool.
func (l *Loader) Close() {
	l.pool.Close()
}

// Load copies every registered output found in outDir, in registry order.
// Each table is loaded in its own transaction; a failure stops the load
// and leaves earlier tables committed.
func (l *Loader) Load(ctx context.Context, outDir string, opts Options) ([]LoadResult, error) {
	defs, err := selectTables(opts.Tables)
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx)
	results := make([]LoadResult, 0, len(defs))
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		path := filepath.Join(outDir, def.Info.FileName)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logger.Warn("output file not found, skipping", "table", def.Info.Key, "file", path)
			results = append(results, LoadResult{Key: def.Info.Key, FileName: def.Info.FileName, Skipped: true})
			continue
		}

		start := time.Now()
		n, err := l.LoadTable(ctx, def, path, opts.Truncate)
		if err != nil {
			return results, fmt.Errorf("load %s: %w", def.Info.Key, err)
		}
		r := LoadResult{Key: def.Info.Key, FileName: def.Info.FileName, Rows: n, Duration: time.Since(start)}
		logger.Info("loaded table", "table", r.Key, "rows", r.Rows, "duration_ms", r.Duration.Milliseconds())
		results = append(results, r)
	}
	return results, nil
}

func selectTables(keys []string) ([]core.OutputDefinition, error) {
	if len(keys) == 0 {
		return core.All(), nil
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := core.Get(k); !ok {
			return nil, fmt.Errorf("unknown table: %s", k)
		}
		want[k] = true
	}
	var defs []core.OutputDefinition
	for _, def := range core.All() {
		if want[def.Info.Key] {
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// LoadTable copies one output file into its table and returns the rows copied.
func (l *Loader) LoadTable(ctx context.Context, def core.OutputDefinition, path string, truncate bool) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var size int64
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}

	src, err := newFileSource(ctx, f, size, def)
	if err != nil {
		return 0, err
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	table := pgx.Identifier{def.Info.Key}
	if truncate {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+table.Sanitize()); err != nil {
			return 0, err
		}
	}

	n, err := tx.CopyFrom(ctx, table, def.Info.Columns, src)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}
