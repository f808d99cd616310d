// Package tsv reads and writes the tab-separated dialect used by the IMDb
// dataset and by the normalized output tables.
//
// Both directions use `\N` for NULL. Input quoting differs per source file:
// some files contain unbalanced quote characters in titles and must be read
// with quoting disabled.
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgtype"
)

// Null is the token marking a missing value.
const Null = `\N`

// Quoting controls how quote characters in input are treated.
type Quoting int

const (
	// QuoteMinimal honors fields wrapped in double quotes.
	QuoteMinimal Quoting = iota
	// QuoteNone treats every quote character as data.
	QuoteNone
)

// String returns the name of the quoting mode.
func (q Quoting) String() string {
	if q == QuoteNone {
		return "none"
	}
	return "minimal"
}

// tokenizer states for QuoteMinimal input.
type fieldState int

const (
	startField fieldState = iota
	inField
	inQuotedField
	quoteInQuotedField
)

// Reader reads records from a TSV stream one line at a time.
type Reader struct {
	quoting Quoting
	counter *CountingReader
	lines   *bufio.Reader
	line    int // last physical line read
	start   int // first line of the last record
}

// NewReader creates a Reader. size is the total stream size for progress
// reporting and may be 0 if unknown.
func NewReader(r io.Reader, size int64, quoting Quoting) *Reader {
	counter, stream := wrapForStreaming(r, size)
	return &Reader{
		quoting: quoting,
		counter: counter,
		lines:   bufio.NewReaderSize(stream, 64*1024),
	}
}

// Read returns the raw fields of the next record.
// It returns io.EOF when the stream is exhausted. Blank lines are skipped.
func (r *Reader) Read() ([]string, error) {
	if r.quoting == QuoteNone {
		return r.readLine()
	}
	return r.readQuoted()
}

// nextLine returns the next physical line without its terminator.
// crlf reports a "\r\n" ending; eol is false for a final unterminated line.
func (r *Reader) nextLine() (text string, crlf, eol bool, err error) {
	text, err = r.lines.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, false, err
	}
	if err == io.EOF && text == "" {
		return "", false, false, io.EOF
	}
	r.line++

	text, eol = strings.CutSuffix(text, "\n")
	text, crlf = strings.CutSuffix(text, "\r")
	return text, crlf, eol, nil
}

func (r *Reader) readLine() ([]string, error) {
	for {
		text, _, _, err := r.nextLine()
		if err != nil {
			return nil, err
		}
		if text == "" {
			continue
		}

		r.start = r.line
		fields := strings.Split(text, "\t")
		sanitizeFields(fields)
		return fields, nil
	}
}

// readQuoted tokenizes one record the way the dataset's producer expects:
// a quote only opens a quoted field at the start of a field, a doubled
// quote inside one is a literal quote, and a closing quote followed by
// ordinary text continues the field unquoted, so `"Weird Al" Yankovic`
// reads as `Weird Al Yankovic`. Quoted fields may span lines.
func (r *Reader) readQuoted() ([]string, error) {
	var (
		fields []string
		field  strings.Builder
		state  = startField
	)

	for {
		text, crlf, eol, err := r.nextLine()
		if err == io.EOF && state == inQuotedField {
			return nil, fmt.Errorf("invalid tsv at line %d: EOF inside quoted field", r.start)
		}
		if err != nil {
			return nil, err
		}

		if fields == nil && state == startField && field.Len() == 0 {
			if text == "" {
				continue
			}
			r.start = r.line
		}

		for i := 0; i < len(text); i++ {
			c := text[i]
			switch state {
			case startField:
				switch c {
				case '"':
					state = inQuotedField
				case '\t':
					fields = append(fields, "")
				default:
					field.WriteByte(c)
					state = inField
				}
			case inField:
				if c == '\t' {
					fields = append(fields, field.String())
					field.Reset()
					state = startField
				} else {
					field.WriteByte(c)
				}
			case inQuotedField:
				if c == '"' {
					state = quoteInQuotedField
				} else {
					field.WriteByte(c)
				}
			case quoteInQuotedField:
				switch c {
				case '"':
					field.WriteByte('"')
					state = inQuotedField
				case '\t':
					fields = append(fields, field.String())
					field.Reset()
					state = startField
				default:
					field.WriteByte(c)
					state = inField
				}
			}
		}

		if state == inQuotedField {
			if !eol {
				return nil, fmt.Errorf("invalid tsv at line %d: EOF inside quoted field", r.start)
			}
			if crlf {
				field.WriteByte('\r')
			}
			field.WriteByte('\n')
			continue
		}

		fields = append(fields, field.String())
		sanitizeFields(fields)
		return fields, nil
	}
}

// Line returns the 1-indexed line number on which the last record started.
func (r *Reader) Line() int {
	return r.start
}

// BytesRead returns the number of bytes consumed from the underlying stream.
func (r *Reader) BytesRead() int64 {
	return r.counter.BytesRead
}

// Progress returns the read progress as a percentage (0-100).
func (r *Reader) Progress() int {
	return r.counter.Progress()
}

// Cells converts raw fields to nullable cells. Both `\N` and the empty
// string are NULL.
func Cells(fields []string) []pgtype.Text {
	cells := make([]pgtype.Text, len(fields))
	for i, f := range fields {
		cells[i] = ToCell(f)
	}
	return cells
}

// ToCell converts one raw field to a nullable cell.
// Only `\N` and the empty field are NULL; unlike pandas' default NA list,
// "NA", "null" and "NaN" stay values.
func ToCell(field string) pgtype.Text {
	if field == Null || field == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: field, Valid: true}
}

func sanitizeFields(fields []string) {
	for i, f := range fields {
		if !utf8.ValidString(f) {
			fields[i] = strings.ToValidUTF8(f, "�")
		}
	}
}
