package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
)

func init() {
	registerTitles()
	registerTitleGenres()
}

func registerTitles() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:        "titles",
			Source:     "title.basics",
			Label:      "Titles",
			FileName:   "Titles.tsv",
			PrimaryKey: []string{"title_id"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "title_type", Type: core.FieldText, Nullable: true},
			{Name: "primary_title", Type: core.FieldText, Nullable: true},
			{Name: "original_title", Type: core.FieldText, Nullable: true},
			{Name: "is_adult", Type: core.FieldBool, Nullable: true},
			{Name: "start_year", Type: core.FieldInt, Nullable: true},
			{Name: "end_year", Type: core.FieldInt, Nullable: true},
			{Name: "runtime_minutes", Type: core.FieldInt, Nullable: true},
		},
		Build: projection(
			column{"tconst", "title_id"},
			column{"titleType", "title_type"},
			column{"primaryTitle", "primary_title"},
			column{"originalTitle", "original_title"},
			column{"isAdult", "is_adult"},
			column{"startYear", "start_year"},
			column{"endYear", "end_year"},
			column{"runtimeMinutes", "runtime_minutes"},
		),
	})
}

func registerTitleGenres() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:      "title_genres",
			Source:   "title.basics",
			Label:    "Title genres",
			FileName: "Title_genres.tsv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "genre", Type: core.FieldText, Nullable: true},
		},
		Build: explodeList(column{"tconst", "title_id"}, column{"genres", "genre"}),
	})
}
