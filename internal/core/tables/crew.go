package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
)

func init() {
	registerDirectors()
	registerWriters()
}

func registerDirectors() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:      "directors",
			Source:   "title.crew",
			Label:    "Directors",
			FileName: "Directors.tsv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "name_id", Type: core.FieldText, Nullable: true},
		},
		Build: explodeList(column{"tconst", "title_id"}, column{"directors", "name_id"}),
	})
}

func registerWriters() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:      "writers",
			Source:   "title.crew",
			Label:    "Writers",
			FileName: "Writers.tsv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "name_id", Type: core.FieldText, Nullable: true},
		},
		Build: explodeList(column{"tconst", "title_id"}, column{"writers", "name_id"}),
	})
}
