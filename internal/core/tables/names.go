package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
)

func init() {
	registerNames()
	registerNameWorkedAs()
	registerKnownFor()
}

func registerNames() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:        "names_",
			Source:     "name.basics",
			Label:      "Names",
			FileName:   "Names_.tsv",
			PrimaryKey: []string{"name_id"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name_id", Type: core.FieldText},
			{Name: "name_", Type: core.FieldText, Nullable: true},
			{Name: "birth_year", Type: core.FieldInt, Nullable: true},
			{Name: "death_year", Type: core.FieldInt, Nullable: true},
		},
		Build: projection(
			column{"nconst", "name_id"},
			column{"primaryName", "name_"},
			column{"birthYear", "birth_year"},
			column{"deathYear", "death_year"},
		),
	})
}

func registerNameWorkedAs() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:      "name_worked_as",
			Source:   "name.basics",
			Label:    "Name worked as",
			FileName: "Name_worked_as.tsv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name_id", Type: core.FieldText},
			{Name: "profession", Type: core.FieldText, Nullable: true},
		},
		Build: explodeList(column{"nconst", "name_id"}, column{"primaryProfession", "profession"}),
	})
}

func registerKnownFor() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:      "known_for",
			Source:   "name.basics",
			Label:    "Known for",
			FileName: "Known_for.tsv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name_id", Type: core.FieldText},
			{Name: "title_id", Type: core.FieldText, Nullable: true},
		},
		Build: explodeList(column{"nconst", "name_id"}, column{"knownForTitles", "title_id"}),
	})
}
