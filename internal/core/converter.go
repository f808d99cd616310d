package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/imdbsql/internal/archive"
	"github.com/JonMunkholm/imdbsql/internal/logging"
	"github.com/JonMunkholm/imdbsql/internal/tsv"
)

// ContextCheckInterval is how many rows are read between cancellation checks.
const ContextCheckInterval = 10000

// Options configures a conversion run.
type Options struct {
	DataDir string
	OutDir  string
	Sources []string // Source keys to process; empty means all
	Unzip   bool     // Expand *.gz files in DataDir first
	Dedupe  DedupeMode
}

// Converter reads the registered sources and writes their outputs.
type Converter struct {
	now func() time.Time
}

// NewConverter creates a Converter.
func NewConverter() *Converter {
	return &Converter{now: time.Now}
}

// Run processes every selected source in order. Sources are read fully into
// memory, each derived output is written once, and the source frame is
// released before the next source is read.
func (c *Converter) Run(ctx context.Context, opts Options) (*RunResult, error) {
	start := c.now()
	result := &RunResult{RunID: uuid.NewString()}
	ctx = logging.WithFields(ctx, "run_id", result.RunID)
	logger := logging.From(ctx)

	if opts.Dedupe == "" {
		opts.Dedupe = DedupeDropAll
	}
	selected, err := selectSources(opts.Sources)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", opts.OutDir, err)
	}

	if opts.Unzip {
		paths, err := archive.UnzipDir(ctx, opts.DataDir)
		if err != nil {
			return nil, err
		}
		result.Unzipped = paths
	}

	logger.Info("conversion started", "sources", len(selected), "data_dir", opts.DataDir, "out_dir", opts.OutDir)

	for _, src := range selected {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		sr, err := c.runSource(ctx, src, opts)
		if err != nil {
			return result, fmt.Errorf("%s: %w", src.Key, err)
		}
		result.Sources = append(result.Sources, *sr)
	}

	result.Duration = c.now().Sub(start)
	logger.Info("conversion completed",
		"rows", result.TotalRows(),
		"failed", result.TotalFailed(),
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

func selectSources(keys []string) ([]SourceDefinition, error) {
	all := Sources()
	if len(keys) == 0 {
		return all, nil
	}

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := GetSource(k); !ok {
			return nil, fmt.Errorf("unknown source: %s", k)
		}
		want[k] = true
	}

	var selected []SourceDefinition
	for _, s := range all {
		if want[s.Key] {
			selected = append(selected, s)
		}
	}
	return selected, nil
}

func (c *Converter) runSource(ctx context.Context, src SourceDefinition, opts Options) (*SourceResult, error) {
	start := c.now()
	logger := logging.From(ctx).With("source", src.Key)

	frame, failed, err := ReadSource(ctx, src, filepath.Join(opts.DataDir, src.FileName))
	if err != nil {
		return nil, err
	}
	logger.Info("source loaded", "rows", frame.Len(), "failed", len(failed))

	sr := &SourceResult{
		Key:        src.Key,
		FileName:   src.FileName,
		Rows:       frame.Len(),
		FailedRows: failed,
	}

	bopts := BuildOptions{Dedupe: opts.Dedupe}
	for _, def := range BySource(src.Key) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tr, err := c.writeOutput(frame, def, bopts, opts.OutDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.Info.Key, err)
		}
		logger.Info("wrote table", "table", def.Info.Key, "file", tr.FileName, "rows", tr.Rows)
		sr.Outputs = append(sr.Outputs, *tr)
	}

	if len(failed) > 0 {
		path := filepath.Join(opts.OutDir, FailedRowsFileName(src.Key))
		if err := WriteFailedRows(path, frame.Columns, failed); err != nil {
			return nil, err
		}
		logger.Warn("skipped malformed rows", "count", len(failed), "file", path)
	}

	sr.Duration = c.now().Sub(start)
	return sr, nil
}

func (c *Converter) writeOutput(src *Frame, def OutputDefinition, opts BuildOptions, outDir string) (*TableResult, error) {
	start := c.now()

	out, err := def.Build(src, opts)
	if err != nil {
		return nil, err
	}
	// Enforce the declared column order regardless of how the builder arrived at it.
	out, err = out.Select(def.Info.Columns...)
	if err != nil {
		return nil, err
	}

	if err := tsv.WriteFile(filepath.Join(outDir, def.Info.FileName), out.Columns, out.Rows); err != nil {
		return nil, err
	}

	return &TableResult{
		Key:      def.Info.Key,
		FileName: def.Info.FileName,
		Rows:     out.Len(),
		Duration: c.now().Sub(start),
	}, nil
}

// ReadSource reads a source file into a frame. Rows whose field count does
// not match the header are returned as failed rows instead of the frame.
func ReadSource(ctx context.Context, src SourceDefinition, path string) (*Frame, []FailedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	var size int64
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}

	r := tsv.NewReader(f, size, src.Quoting)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("empty file: %s", path)
	}
	if err != nil {
		return nil, nil, err
	}

	idx := MakeHeaderIndex(header)
	for _, col := range src.Columns {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q in %s", col, src.FileName)
		}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	logger := logging.From(ctx).With("source", src.Key)
	var (
		rows   [][]Cell
		failed []FailedRow
	)
	for n := 1; ; n++ {
		if n%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			logger.Debug("reading source", "rows", n, "bytes", r.BytesRead(), "progress_pct", r.Progress())
		}

		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		if len(fields) != len(header) {
			failed = append(failed, FailedRow{
				FileName:   src.FileName,
				LineNumber: r.Line(),
				Reason:     fmt.Sprintf("expected %d fields, got %d", len(header), len(fields)),
				Data:       fields,
			})
			continue
		}
		rows = append(rows, tsv.Cells(fields))
	}

	return NewFrame(header, rows), failed, nil
}

// FailedRowsFileName returns the name of the failed rows file for a source.
func FailedRowsFileName(source string) string {
	return source + " - failed.tsv"
}

// WriteFailedRows writes failed rows with a Status column prepended.
func WriteFailedRows(path string, header []string, failed []FailedRow) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	w := tsv.NewWriter(f)
	if err := w.WriteHeader(append([]string{"Status"}, header...)); err != nil {
		return err
	}
	for _, fr := range failed {
		status := "line " + strconv.Itoa(fr.LineNumber) + ": " + fr.Reason
		if err := w.WriteStrings(append([]string{status}, fr.Data...)); err != nil {
			return err
		}
	}
	return w.Flush()
}
