package tsv

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func readAll(t *testing.T, input string, quoting Quoting) [][]string {
	t.Helper()
	r := NewReader(strings.NewReader(input), int64(len(input)), quoting)
	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, rec)
	}
}

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"file with BOM", append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\tb")...), "a\tb"},
		{"file without BOM", []byte("a\tb"), "a\tb"},
		{"empty file", []byte{}, ""},
		{"only BOM", []byte{0xEF, 0xBB, 0xBF}, ""},
		{"partial BOM at start", []byte{0xEF, 0xBB, 'a'}, string([]byte{0xEF, 0xBB, 'a'})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(NewBOMSkippingReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestCountingReader(t *testing.T) {
	c := NewCountingReader(strings.NewReader("0123456789"), 20)
	if _, err := io.ReadAll(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.BytesRead != 10 {
		t.Errorf("BytesRead = %d, want 10", c.BytesRead)
	}
	if c.Progress() != 50 {
		t.Errorf("Progress() = %d, want 50", c.Progress())
	}

	unknown := NewCountingReader(strings.NewReader("x"), 0)
	io.ReadAll(unknown)
	if unknown.Progress() != 0 {
		t.Errorf("Progress() with unknown total = %d, want 0", unknown.Progress())
	}
}

func TestReader_QuoteNone(t *testing.T) {
	input := "titleId\ttitle\n" +
		"tt1\t\"Quoted start\n" +
		"tt2\tplain\r\n" +
		"\n" +
		"tt3\tno newline"

	got := readAll(t, input, QuoteNone)
	want := [][]string{
		{"titleId", "title"},
		{"tt1", `"Quoted start`},
		{"tt2", "plain"},
		{"tt3", "no newline"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReader_QuoteMinimal(t *testing.T) {
	input := "tconst\tcharacters\n" +
		"tt1\t\"[\"\"Self\"\"]\"\n" +
		"tt2\t\"a\tb\"\n"

	got := readAll(t, input, QuoteMinimal)
	want := [][]string{
		{"tconst", "characters"},
		{"tt1", `["Self"]`},
		{"tt2", "a\tb"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReader_QuoteMinimal_ClosedQuoteThenText(t *testing.T) {
	input := "nconst\tprimaryName\tbirthYear\n" +
		"nm1\t\"Weird Al\" Yankovic\t1959\n" +
		"nm2\tFred Astaire\t1899\n" +
		"nm3\tLauren Bacall\t1924\n"

	got := readAll(t, input, QuoteMinimal)
	want := [][]string{
		{"nconst", "primaryName", "birthYear"},
		{"nm1", "Weird Al Yankovic", "1959"},
		{"nm2", "Fred Astaire", "1899"},
		{"nm3", "Lauren Bacall", "1924"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReader_QuoteMinimal_Tokenizer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"quote inside unquoted field is literal", "a\tsay \"hi\"\n", [][]string{{"a", `say "hi"`}}},
		{"doubled quote in quoted field", "\"a \"\"b\"\" c\"\tx\n", [][]string{{`a "b" c`, "x"}}},
		{"empty quoted field", "\"\"\tx\n", [][]string{{"", "x"}}},
		{"trailing empty field", "a\t\n", [][]string{{"a", ""}}},
		{"quoted field spans lines", "\"line\nbreak\"\tx\nb\ty\n", [][]string{{"line\nbreak", "x"}, {"b", "y"}}},
		{"crlf endings", "a\tb\r\nc\td\r\n", [][]string{{"a", "b"}, {"c", "d"}}},
		{"no final newline", "a\t\"b\"", [][]string{{"a", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, tt.input, QuoteMinimal)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReader_QuoteMinimal_UnterminatedQuote(t *testing.T) {
	r := NewReader(strings.NewReader("h\n\"open\tx\nmore\n"), 0, QuoteMinimal)
	if _, err := r.Read(); err != nil {
		t.Fatalf("header: %v", err)
	}
	_, err := r.Read()
	if err == nil || !strings.Contains(err.Error(), "invalid tsv at line 2") {
		t.Errorf("expected invalid tsv error at line 2, got %v", err)
	}
}

func TestReader_QuoteMinimal_RecordStartLine(t *testing.T) {
	r := NewReader(strings.NewReader("h\n\"a\nb\"\nc\n"), 0, QuoteMinimal)
	var lines []int
	for {
		if _, err := r.Read(); err != nil {
			break
		}
		lines = append(lines, r.Line())
	}
	if want := []int{1, 2, 4}; !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestReader_BytesRead(t *testing.T) {
	input := "a\tb\nc\td\n"
	r := NewReader(strings.NewReader(input), int64(len(input)), QuoteMinimal)
	for {
		if _, err := r.Read(); err != nil {
			if err != io.EOF {
				t.Fatalf("unexpected error: %v", err)
			}
			break
		}
	}
	if r.BytesRead() != int64(len(input)) {
		t.Errorf("BytesRead() = %d, want %d", r.BytesRead(), len(input))
	}
	if r.Progress() != 100 {
		t.Errorf("Progress() = %d, want 100", r.Progress())
	}
}

func TestReader_LineNumbers(t *testing.T) {
	for _, q := range []Quoting{QuoteNone, QuoteMinimal} {
		t.Run(q.String(), func(t *testing.T) {
			r := NewReader(strings.NewReader("h\n\na\nb\n"), 0, q)
			var lines []int
			for {
				if _, err := r.Read(); err != nil {
					break
				}
				lines = append(lines, r.Line())
			}
			want := []int{1, 3, 4}
			if !reflect.DeepEqual(lines, want) {
				t.Errorf("lines = %v, want %v", lines, want)
			}
		})
	}
}

func TestReader_SanitizesInvalidUTF8(t *testing.T) {
	input := string([]byte{'a', 0x80, 'b', '\t', 'c', '\n'})
	got := readAll(t, input, QuoteNone)
	if got[0][0] != "a�b" {
		t.Errorf("got %q, want %q", got[0][0], "a�b")
	}
	if got[0][1] != "c" {
		t.Errorf("got %q, want %q", got[0][1], "c")
	}
}

func TestToCell(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{`\N`, false},
		{"", false},
		{"NA", true},
		{"0", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := ToCell(tt.input)
			if c.Valid != tt.valid {
				t.Errorf("ToCell(%q).Valid = %v, want %v", tt.input, c.Valid, tt.valid)
			}
			if c.Valid && c.String != tt.input {
				t.Errorf("ToCell(%q).String = %q", tt.input, c.String)
			}
		})
	}
}

func TestQuoteField(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"a\tb", "\"a\tb\""},
		{`say "hi"`, `"say ""hi"""`},
		{"line\nbreak", "\"line\nbreak\""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := QuoteField(tt.input); got != tt.expected {
				t.Errorf("QuoteField(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteHeader([]string{"title_id", "role_"}); err != nil {
		t.Fatal(err)
	}
	w.Write([]pgtype.Text{{String: "tt1", Valid: true}, {}})
	w.Write([]pgtype.Text{{String: "tt2", Valid: true}, {String: `"Q"`, Valid: true}})
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "title_id\trole_\ntt1\t\\N\ntt2\t\"\"\"Q\"\"\"\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if w.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", w.Rows())
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Out.tsv")
	rows := [][]pgtype.Text{
		{{String: "tt1", Valid: true}, {String: "tab\there", Valid: true}},
		{{String: "tt2", Valid: true}, {}},
	}
	if err := WriteFile(path, []string{"a", "b"}, rows); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := NewReader(f, 0, QuoteMinimal)
	header, _ := r.Read()
	if !reflect.DeepEqual(header, []string{"a", "b"}) {
		t.Errorf("header = %q", header)
	}
	first, _ := r.Read()
	if first[1] != "tab\there" {
		t.Errorf("got %q, want %q", first[1], "tab\there")
	}
	second, _ := r.Read()
	if ToCell(second[1]).Valid {
		t.Errorf("expected NULL, got %q", second[1])
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the output file, found %d entries", len(entries))
	}
}
