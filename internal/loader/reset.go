package loader

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// ResetTimeout is the maximum duration for a reset operation.
const ResetTimeout = 30 * time.Second

// Reset truncates the tables of the given output keys, or every registered
// output when keys is empty. This is a destructive operation.
func (l *Loader) Reset(ctx context.Context, keys []string) error {
	defs, err := selectTables(keys)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = pgx.Identifier{def.Info.Key}.Sanitize()
	}

	// One statement, so either every table is emptied or none is.
	if _, err := l.pool.Exec(ctx, "TRUNCATE TABLE "+strings.Join(names, ", ")); err != nil {
		return err
	}
	return nil
}
