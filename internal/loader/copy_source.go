package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/JonMunkholm/imdbsql/internal/core"
	"github.com/JonMunkholm/imdbsql/internal/tsv"
)

// fileSource streams an output file into pgx.CopyFrom. It implements
// pgx.CopyFromSource.
type fileSource struct {
	ctx    context.Context
	def    core.OutputDefinition
	reader *tsv.Reader
	fields []string
	rows   int
	err    error
}

// newFileSource reads and checks the header of r against def's columns.
func newFileSource(ctx context.Context, r io.Reader, size int64, def core.OutputDefinition) (*fileSource, error) {
	reader := tsv.NewReader(r, size, tsv.QuoteMinimal)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file: %s", def.Info.FileName)
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, def.Info.Columns) {
		return nil, fmt.Errorf("column not found: %s has header %v, expected %v", def.Info.FileName, header, def.Info.Columns)
	}
	return &fileSource{ctx: ctx, def: def, reader: reader}, nil
}

func (s *fileSource) Next() bool {
	if s.err != nil {
		return false
	}
	if s.rows > 0 && s.rows%core.ContextCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}
	}

	fields, err := s.reader.Read()
	if errors.Is(err, io.EOF) {
		return false
	}
	if err != nil {
		s.err = err
		return false
	}
	s.fields = fields
	s.rows++
	return true
}

func (s *fileSource) Values() ([]any, error) {
	values, err := s.def.CopyValues(tsv.Cells(s.fields))
	if err != nil {
		return nil, fmt.Errorf("%s line %d: %w", s.def.Info.FileName, s.reader.Line(), err)
	}
	return values, nil
}

func (s *fileSource) Err() error {
	return s.err
}
