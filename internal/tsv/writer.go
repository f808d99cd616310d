package tsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Writer writes records in the output dialect: tab separated, `\n` line
// endings, NULL as `\N`, and minimal quoting.
type Writer struct {
	w    *bufio.Writer
	rows int
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 64*1024)}
}

// WriteHeader writes the column names line.
func (w *Writer) WriteHeader(columns []string) error {
	return w.writeFields(columns)
}

// Write writes one row of cells. NULL cells are written as `\N`.
func (w *Writer) Write(row []pgtype.Text) error {
	fields := make([]string, len(row))
	for i, c := range row {
		if !c.Valid {
			fields[i] = Null
			continue
		}
		fields[i] = c.String
	}
	if err := w.writeFields(fields); err != nil {
		return err
	}
	w.rows++
	return nil
}

// WriteStrings writes one row of raw strings as-is, apart from quoting.
func (w *Writer) WriteStrings(fields []string) error {
	if err := w.writeFields(fields); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written, excluding the header.
func (w *Writer) Rows() int {
	return w.rows
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) writeFields(fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.w.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(QuoteField(f)); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// QuoteField quotes a field if it contains a tab, quote, or line break.
func QuoteField(s string) string {
	if !strings.ContainsAny(s, "\t\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteFile writes a header and rows to path. The file is written to a
// temporary name in the same directory and renamed on success.
func WriteFile(path string, columns []string, rows [][]pgtype.Text) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := NewWriter(tmp)
	if err = w.WriteHeader(columns); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range rows {
		if err = w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
