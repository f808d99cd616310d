package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
	"github.com/JonMunkholm/imdbsql/internal/tsv"
)

func init() {
	registerSources()
}

// Sources are processed in the order listed. title.akas and title.basics
// contain unbalanced quotes in titles, so quoting is disabled for them.
func registerSources() {
	defs := []core.SourceDefinition{
		{
			Key:     "title.akas",
			Columns: []string{"titleId", "ordering", "title", "region", "language", "types", "attributes", "isOriginalTitle"},
			Quoting: tsv.QuoteNone,
		},
		{
			Key:     "title.crew",
			Columns: []string{"tconst", "directors", "writers"},
		},
		{
			Key:     "title.episode",
			Columns: []string{"tconst", "parentTconst", "seasonNumber", "episodeNumber"},
		},
		{
			Key:     "name.basics",
			Columns: []string{"nconst", "primaryName", "birthYear", "deathYear", "primaryProfession", "knownForTitles"},
		},
		{
			Key:     "title.principals",
			Columns: []string{"tconst", "ordering", "nconst", "category", "job", "characters"},
		},
		{
			Key:     "title.basics",
			Columns: []string{"tconst", "titleType", "primaryTitle", "originalTitle", "isAdult", "startYear", "endYear", "runtimeMinutes", "genres"},
			Quoting: tsv.QuoteNone,
		},
		{
			Key:     "title.ratings",
			Columns: []string{"tconst", "averageRating", "numVotes"},
		},
	}

	for i, def := range defs {
		def.Order = i + 1
		core.RegisterSource(def)
	}
}
