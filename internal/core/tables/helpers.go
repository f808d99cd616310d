package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
)

// column maps a source column to an output column.
type column struct {
	from string
	to   string
}

// selectAs projects src onto cols and renames them, in one step.
func selectAs(src *core.Frame, cols ...column) (*core.Frame, error) {
	from := make([]string, len(cols))
	names := make(map[string]string, len(cols))
	for i, c := range cols {
		from[i] = c.from
		names[c.from] = c.to
	}

	f, err := src.Select(from...)
	if err != nil {
		return nil, err
	}
	return f.Rename(names), nil
}

// explodeList builds a two-column link table from an id column and a
// comma-separated list column. Rows with a NULL list are dropped.
func explodeList(id, list column) core.BuildFunc {
	return func(src *core.Frame, _ core.BuildOptions) (*core.Frame, error) {
		f, err := selectAs(src, id, list)
		if err != nil {
			return nil, err
		}
		return f.DropNull().Explode(list.to, ",")
	}
}

// dropNullOf builds a table of cols that keeps only fully populated rows.
func dropNullOf(cols ...column) core.BuildFunc {
	return func(src *core.Frame, _ core.BuildOptions) (*core.Frame, error) {
		f, err := selectAs(src, cols...)
		if err != nil {
			return nil, err
		}
		return f.DropNull(), nil
	}
}

// projection builds a table of cols with every row kept.
func projection(cols ...column) core.BuildFunc {
	return func(src *core.Frame, _ core.BuildOptions) (*core.Frame, error) {
		return selectAs(src, cols...)
	}
}
