package core

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/imdbsql/internal/tsv"
)

// Cell is a single nullable value of a source or output table.
// A NULL cell (Valid=false) is read from and written as `\N`.
type Cell = pgtype.Text

// FieldType represents the PostgreSQL type an output column is loaded as.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldNumeric
	FieldBool
)

// String returns the lowercase name of the field type.
func (t FieldType) String() string {
	switch t {
	case FieldInt:
		return "int"
	case FieldNumeric:
		return "numeric"
	case FieldBool:
		return "bool"
	default:
		return "text"
	}
}

// FieldSpec defines a single column of an output table.
type FieldSpec struct {
	Name     string    // Output column name, also the database column
	Type     FieldType // Database type the text value is converted to on load
	Nullable bool      // NULL values are allowed
}

// SourceDefinition describes one IMDb source file.
type SourceDefinition struct {
	Key      string      // Dataset name: "title.akas"
	FileName string      // File inside the data directory: "title.akas.tsv"
	Columns  []string    // Columns the header must contain
	Quoting  tsv.Quoting // How quote characters in the file are treated
	Order    int         // Processing order, lowest first
}

// TableInfo contains display information about an output table.
type TableInfo struct {
	Key        string   // Unique identifier and database table: "aliases"
	Source     string   // Source key this table is derived from: "title.akas"
	Label      string   // Display name: "Aliases"
	FileName   string   // Output file: "Aliases.tsv"
	Columns    []string // Output column names, in file order
	PrimaryKey []string // Column(s) that form the natural key, if any
}

// BuildOptions carries run options that affect how outputs are derived.
type BuildOptions struct {
	Dedupe DedupeMode
}

// BuildFunc derives an output frame from a source frame.
// Implementations must not modify the source.
type BuildFunc func(src *Frame, opts BuildOptions) (*Frame, error)

// OutputDefinition contains everything needed to produce and load an output table.
type OutputDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec
	Build      BuildFunc
}

// CopyValues converts a row of the written file to typed values for loading.
func (d OutputDefinition) CopyValues(row []Cell) ([]any, error) {
	return ConvertRow(row, d.FieldSpecs)
}

// DedupeMode selects how duplicate rows are removed.
type DedupeMode string

const (
	// DedupeDropAll removes every row that occurs more than once.
	DedupeDropAll DedupeMode = "drop-all"
	// DedupeKeepFirst keeps the first occurrence of each row.
	DedupeKeepFirst DedupeMode = "keep-first"
)

// ParseDedupeMode validates a dedupe mode string.
func ParseDedupeMode(s string) (DedupeMode, bool) {
	switch DedupeMode(s) {
	case DedupeDropAll, DedupeKeepFirst:
		return DedupeMode(s), true
	default:
		return "", false
	}
}

// FailedRow contains information about a source row that could not be read.
type FailedRow struct {
	FileName   string
	LineNumber int
	Reason     string
	Data       []string
}

// TableResult contains the result of writing one output table.
type TableResult struct {
	Key      string
	FileName string
	Rows     int
	Duration time.Duration
}

// SourceResult contains the result of processing one source file.
type SourceResult struct {
	Key        string
	FileName   string
	Rows       int
	Outputs    []TableResult
	FailedRows []FailedRow
	Duration   time.Duration
}

// RunResult contains the final result of a conversion run.
type RunResult struct {
	RunID    string
	Unzipped []string
	Sources  []SourceResult
	Duration time.Duration
}

// TotalRows returns the number of rows written across all outputs.
func (r *RunResult) TotalRows() int {
	total := 0
	for _, s := range r.Sources {
		for _, o := range s.Outputs {
			total += o.Rows
		}
	}
	return total
}

// TotalFailed returns the number of source rows skipped across all sources.
func (r *RunResult) TotalFailed() int {
	total := 0
	for _, s := range r.Sources {
		total += len(s.FailedRows)
	}
	return total
}
