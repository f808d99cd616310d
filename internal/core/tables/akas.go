package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
)

func init() {
	registerAliases()
	registerAliasTypes()
	registerAliasAttributes()
}

func registerAliases() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:        "aliases",
			Source:     "title.akas",
			Label:      "Aliases",
			FileName:   "Aliases.tsv",
			PrimaryKey: []string{"title_id", "ordering"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "ordering", Type: core.FieldInt},
			{Name: "title", Type: core.FieldText, Nullable: true},
			{Name: "region", Type: core.FieldText, Nullable: true},
			{Name: "language", Type: core.FieldText, Nullable: true},
			{Name: "is_original_title", Type: core.FieldBool, Nullable: true},
		},
		Build: projection(
			column{"titleId", "title_id"},
			column{"ordering", "ordering"},
			column{"title", "title"},
			column{"region", "region"},
			column{"language", "language"},
			column{"isOriginalTitle", "is_original_title"},
		),
	})
}

func registerAliasTypes() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:      "alias_types",
			Source:   "title.akas",
			Label:    "Alias types",
			FileName: "Alias_types.tsv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "ordering", Type: core.FieldInt},
			{Name: "type", Type: core.FieldText},
		},
		Build: dropNullOf(
			column{"titleId", "title_id"},
			column{"ordering", "ordering"},
			column{"types", "type"},
		),
	})
}

func registerAliasAttributes() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:      "alias_attributes",
			Source:   "title.akas",
			Label:    "Alias attributes",
			FileName: "Alias_attributes.tsv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "ordering", Type: core.FieldInt},
			{Name: "attribute", Type: core.FieldText},
		},
		Build: dropNullOf(
			column{"titleId", "title_id"},
			column{"ordering", "ordering"},
			column{"attributes", "attribute"},
		),
	})
}
