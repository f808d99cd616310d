package tables

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/JonMunkholm/imdbsql/internal/core"
)

func cell(s string) core.Cell {
	if s == `\N` {
		return core.Cell{}
	}
	return core.Cell{String: s, Valid: true}
}

func frameOf(columns []string, rows ...[]string) *core.Frame {
	cells := make([][]core.Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]core.Cell, len(row))
		for j, s := range row {
			cells[i][j] = cell(s)
		}
	}
	return core.NewFrame(columns, cells)
}

func rowsOf(f *core.Frame) [][]string {
	out := make([][]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			if c.Valid {
				out[i][j] = c.String
			} else {
				out[i][j] = `\N`
			}
		}
	}
	return out
}

func build(t *testing.T, key string, src *core.Frame, opts core.BuildOptions) *core.Frame {
	t.Helper()
	def, ok := core.Get(key)
	if !ok {
		t.Fatalf("output %s not registered", key)
	}
	f, err := def.Build(src, opts)
	if err != nil {
		t.Fatalf("build %s: %v", key, err)
	}
	f, err = f.Select(def.Info.Columns...)
	if err != nil {
		t.Fatalf("build %s produced wrong columns: %v", key, err)
	}
	return f
}

func TestRegistration(t *testing.T) {
	if got := len(core.Sources()); got != 7 {
		t.Errorf("registered %d sources, want 7", got)
	}
	if got := core.TableCount(); got != 14 {
		t.Errorf("registered %d outputs, want 14", got)
	}

	var order []string
	for _, s := range core.Sources() {
		order = append(order, s.Key)
	}
	want := []string{"title.akas", "title.crew", "title.episode", "name.basics", "title.principals", "title.basics", "title.ratings"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("source order = %v, want %v", order, want)
	}

	for _, def := range core.All() {
		if _, ok := core.GetSource(def.Info.Source); !ok {
			t.Errorf("%s derives from unregistered source %q", def.Info.Key, def.Info.Source)
		}
		if len(def.Info.Columns) != len(def.FieldSpecs) {
			t.Errorf("%s: %d columns but %d field specs", def.Info.Key, len(def.Info.Columns), len(def.FieldSpecs))
		}
		if !strings.HasSuffix(def.Info.FileName, ".tsv") {
			t.Errorf("%s: file name %q", def.Info.Key, def.Info.FileName)
		}
	}
}

var akasCols = []string{"titleId", "ordering", "title", "region", "language", "types", "attributes", "isOriginalTitle"}

func TestAkasOutputs(t *testing.T) {
	src := frameOf(akasCols,
		[]string{"tt1", "1", "Carmencita", `\N`, `\N`, "original", `\N`, "1"},
		[]string{"tt1", "2", "Carmencita", "US", `\N`, `\N`, "literal title", "0"},
	)

	tests := []struct {
		key  string
		want [][]string
	}{
		{"aliases", [][]string{
			{"tt1", "1", "Carmencita", `\N`, `\N`, "1"},
			{"tt1", "2", "Carmencita", "US", `\N`, "0"},
		}},
		{"alias_types", [][]string{{"tt1", "1", "original"}}},
		{"alias_attributes", [][]string{{"tt1", "2", "literal title"}}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := build(t, tt.key, src, core.BuildOptions{})
			if !reflect.DeepEqual(rowsOf(got), tt.want) {
				t.Errorf("rows = %v, want %v", rowsOf(got), tt.want)
			}
		})
	}
}

func TestCrewOutputs(t *testing.T) {
	src := frameOf([]string{"tconst", "directors", "writers"},
		[]string{"tt1", "nm1", `\N`},
		[]string{"tt2", "nm2,nm3", "nm4,nm5"},
	)

	directors := build(t, "directors", src, core.BuildOptions{})
	want := [][]string{{"tt1", "nm1"}, {"tt2", "nm2"}, {"tt2", "nm3"}}
	if !reflect.DeepEqual(rowsOf(directors), want) {
		t.Errorf("directors = %v, want %v", rowsOf(directors), want)
	}
	if !reflect.DeepEqual(directors.Columns, []string{"title_id", "name_id"}) {
		t.Errorf("directors columns = %v", directors.Columns)
	}

	writers := build(t, "writers", src, core.BuildOptions{})
	want = [][]string{{"tt2", "nm4"}, {"tt2", "nm5"}}
	if !reflect.DeepEqual(rowsOf(writers), want) {
		t.Errorf("writers = %v, want %v", rowsOf(writers), want)
	}

	if src.Len() != 2 || src.Rows[1][1].String != "nm2,nm3" {
		t.Error("builders modified the source frame")
	}
}

func TestEpisodeBelongsTo(t *testing.T) {
	src := frameOf([]string{"tconst", "parentTconst", "seasonNumber", "episodeNumber"},
		[]string{"tt2", "tt1", "1", `\N`},
	)
	got := build(t, "episode_belongs_to", src, core.BuildOptions{})
	if !reflect.DeepEqual(got.Columns, []string{"title_id", "parent_tv_show_title_id", "season_number", "episode_number"}) {
		t.Errorf("columns = %v", got.Columns)
	}
	if !reflect.DeepEqual(rowsOf(got), [][]string{{"tt2", "tt1", "1", `\N`}}) {
		t.Errorf("rows = %v", rowsOf(got))
	}
}

func TestNameOutputs(t *testing.T) {
	src := frameOf([]string{"nconst", "primaryName", "birthYear", "deathYear", "primaryProfession", "knownForTitles"},
		[]string{"nm1", "Fred Astaire", "1899", "1987", "soundtrack,actor", "tt1,tt2"},
		[]string{"nm2", "Nobody", `\N`, `\N`, `\N`, `\N`},
	)

	names := build(t, "names_", src, core.BuildOptions{})
	if !reflect.DeepEqual(rowsOf(names), [][]string{{"nm1", "Fred Astaire", "1899", "1987"}, {"nm2", "Nobody", `\N`, `\N`}}) {
		t.Errorf("names_ = %v", rowsOf(names))
	}

	worked := build(t, "name_worked_as", src, core.BuildOptions{})
	if !reflect.DeepEqual(rowsOf(worked), [][]string{{"nm1", "soundtrack"}, {"nm1", "actor"}}) {
		t.Errorf("name_worked_as = %v", rowsOf(worked))
	}

	known := build(t, "known_for", src, core.BuildOptions{})
	if !reflect.DeepEqual(rowsOf(known), [][]string{{"nm1", "tt1"}, {"nm1", "tt2"}}) {
		t.Errorf("known_for = %v", rowsOf(known))
	}
}

var principalsCols = []string{"tconst", "ordering", "nconst", "category", "job", "characters"}

func TestPrincipals(t *testing.T) {
	src := frameOf(principalsCols,
		[]string{"tt1", "1", "nm1", "self", `\N`, `["Self"]`},
	)
	got := build(t, "principals", src, core.BuildOptions{})
	if !reflect.DeepEqual(rowsOf(got), [][]string{{"tt1", "1", "nm1", "self", `\N`}}) {
		t.Errorf("principals = %v", rowsOf(got))
	}
}

func TestHadRole(t *testing.T) {
	src := frameOf(principalsCols,
		[]string{"tt1", "1", "nm1", "self", `\N`, `["self - host"," co-host"]`},
		[]string{"tt1", "2", "nm2", "actor", `\N`, `\N`},
		[]string{"tt2", "1", "nm3", "actor", `\N`, `["dr. o'neil"]`},
		[]string{"tt2", "2", "nm3", "actor", `\N`, `["DR. O'NEIL"]`},
		[]string{"tt3", "1", "nm4", "actor", `\N`, `["Him\Her"]`},
	)

	t.Run("drop all duplicates", func(t *testing.T) {
		got := build(t, "had_role", src, core.BuildOptions{Dedupe: core.DedupeDropAll})
		want := [][]string{
			{"tt1", "nm1", "Self - Host"},
			{"tt1", "nm1", "Co-Host"},
			{"tt3", "nm4", "Him|Her"},
		}
		if !reflect.DeepEqual(rowsOf(got), want) {
			t.Errorf("had_role = %v, want %v", rowsOf(got), want)
		}
	})

	t.Run("keep first", func(t *testing.T) {
		got := build(t, "had_role", src, core.BuildOptions{Dedupe: core.DedupeKeepFirst})
		want := [][]string{
			{"tt1", "nm1", "Self - Host"},
			{"tt1", "nm1", "Co-Host"},
			{"tt2", "nm3", "Dr. O'Neil"},
			{"tt3", "nm4", "Him|Her"},
		}
		if !reflect.DeepEqual(rowsOf(got), want) {
			t.Errorf("had_role = %v, want %v", rowsOf(got), want)
		}
	})
}

func TestTitleOutputs(t *testing.T) {
	src := frameOf([]string{"tconst", "titleType", "primaryTitle", "originalTitle", "isAdult", "startYear", "endYear", "runtimeMinutes", "genres"},
		[]string{"tt1", "short", `"Quoted`, "Carmencita", "0", "1894", `\N`, "1", "Documentary,Short"},
	)

	titles := build(t, "titles", src, core.BuildOptions{})
	if !reflect.DeepEqual(rowsOf(titles), [][]string{{"tt1", "short", `"Quoted`, "Carmencita", "0", "1894", `\N`, "1"}}) {
		t.Errorf("titles = %v", rowsOf(titles))
	}

	genres := build(t, "title_genres", src, core.BuildOptions{})
	if !reflect.DeepEqual(rowsOf(genres), [][]string{{"tt1", "Documentary"}, {"tt1", "Short"}}) {
		t.Errorf("title_genres = %v", rowsOf(genres))
	}
}

func TestTitleRatings(t *testing.T) {
	src := frameOf([]string{"tconst", "averageRating", "numVotes"}, []string{"tt1", "5.70", "1983"})
	got := build(t, "title_ratings", src, core.BuildOptions{})
	if !reflect.DeepEqual(rowsOf(got), [][]string{{"tt1", "5.70", "1983"}}) {
		t.Errorf("title_ratings = %v", rowsOf(got))
	}
}

func TestCleanCharacters(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`["Self"]`, "Self"},
		{`["Self","Host"]`, "Self,Host"},
		{`["A\B"]`, "A|B"},
		{`[]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanCharacters(tt.input); got != tt.expected {
				t.Errorf("CleanCharacters(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertAllSources(t *testing.T) {
	data, out := t.TempDir(), t.TempDir()
	files := map[string]string{
		"title.akas.tsv":       strings.Join(akasCols, "\t") + "\ntt1\t1\t\"Quoted\tUS\t\\N\t\\N\t\\N\t0\n",
		"title.crew.tsv":       "tconst\tdirectors\twriters\ntt1\tnm1\tnm2\n",
		"title.episode.tsv":    "tconst\tparentTconst\tseasonNumber\tepisodeNumber\ntt2\ttt1\t1\t1\n",
		"name.basics.tsv":      "nconst\tprimaryName\tbirthYear\tdeathYear\tprimaryProfession\tknownForTitles\nnm1\tA\t1900\t\\N\tactor\ttt1\n",
		"title.principals.tsv": strings.Join(principalsCols, "\t") + "\ntt1\t1\tnm1\tactor\t\\N\t\"[\"\"hero\"\"]\"\n",
		"title.basics.tsv":     "tconst\ttitleType\tprimaryTitle\toriginalTitle\tisAdult\tstartYear\tendYear\truntimeMinutes\tgenres\ntt1\tmovie\tA\tA\t0\t2000\t\\N\t90\tDrama\n",
		"title.ratings.tsv":    "tconst\taverageRating\tnumVotes\ntt1\t7.5\t100\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(data, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	result, err := core.NewConverter().Run(context.Background(), core.Options{DataDir: data, OutDir: out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Sources) != 7 {
		t.Errorf("processed %d sources, want 7", len(result.Sources))
	}
	if result.TotalFailed() != 0 {
		t.Errorf("unexpected failed rows: %d", result.TotalFailed())
	}

	for _, def := range core.All() {
		if _, err := os.Stat(filepath.Join(out, def.Info.FileName)); err != nil {
			t.Errorf("missing output %s: %v", def.Info.FileName, err)
		}
	}

	role, _ := os.ReadFile(filepath.Join(out, "Had_role.tsv"))
	if string(role) != "title_id\tname_id\trole_\ntt1\tnm1\tHero\n" {
		t.Errorf("Had_role.tsv = %q", role)
	}
	aliases, _ := os.ReadFile(filepath.Join(out, "Aliases.tsv"))
	if !strings.Contains(string(aliases), "tt1\t1\t\"\"\"Quoted\"\tUS\t\\N\t0\n") {
		t.Errorf("Aliases.tsv = %q", aliases)
	}
}
