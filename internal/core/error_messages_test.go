package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"cancelled", fmt.Errorf("title.akas: %w", context.Canceled), "RUN001"},
		{"deadline", context.DeadlineExceeded, "RUN002"},
		{"missing file from os", errors.New("open /data/title.akas.tsv: no such file or directory"), "FILE001"},
		{"corrupt archive", errors.New("invalid gzip a.tsv.gz: gzip: invalid header"), "FILE002"},
		{"empty file", errors.New("empty file: title.crew.tsv"), "FILE004"},
		{"unknown source", errors.New("unknown source: title.foo"), "SRC001"},
		{"missing column", errors.New(`missing required column "tconst" in title.crew.tsv`), "SRC002"},
		{"bad number", errors.New(`line 4: invalid number in num_votes: "x"`), "VAL001"},
		{"duplicate key", errors.New("ERROR: duplicate key value violates unique constraint"), "DB001"},
		{"unique", errors.New("violates unique constraint titles_pkey"), "DB001"},
		{"refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "DB002"},
		{"missing relation", errors.New(`ERROR: relation "titles" does not exist`), "DB004"},
		{"bad title id", errors.New("invalid title id"), "SCR001"},
		{"no poster", errors.New("poster not found"), "SCR002"},
		{"unknown error returns default", errors.New("some random internal error"), "ERR000"},
		{"case insensitive matching", errors.New("DUPLICATE KEY value"), "DB001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(errors.New("unknown source: x"))
	want := "Unknown source (Code: SRC001). Run the tables command to list valid sources"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}
