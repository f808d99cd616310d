package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
)

func init() {
	registerPrincipals()
	registerHadRole()
}

func registerPrincipals() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:        "principals",
			Source:     "title.principals",
			Label:      "Principals",
			FileName:   "Principals.tsv",
			PrimaryKey: []string{"title_id", "ordering"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "ordering", Type: core.FieldInt},
			{Name: "name_id", Type: core.FieldText},
			{Name: "job_category", Type: core.FieldText, Nullable: true},
			{Name: "job", Type: core.FieldText, Nullable: true},
		},
		Build: projection(
			column{"tconst", "title_id"},
			column{"ordering", "ordering"},
			column{"nconst", "name_id"},
			column{"category", "job_category"},
			column{"job", "job"},
		),
	})
}

func registerHadRole() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:      "had_role",
			Source:   "title.principals",
			Label:    "Had role",
			FileName: "Had_role.tsv",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "name_id", Type: core.FieldText},
			{Name: "role_", Type: core.FieldText, Nullable: true},
		},
		Build: buildHadRole,
	})
}

// buildHadRole turns the JSON-ish characters list into one row per role.
func buildHadRole(src *core.Frame, opts core.BuildOptions) (*core.Frame, error) {
	f, err := selectAs(src,
		column{"tconst", "title_id"},
		column{"nconst", "name_id"},
		column{"characters", "role_"},
	)
	if err != nil {
		return nil, err
	}

	f, err = f.DropNull().MapColumn("role_", CleanCharacters)
	if err != nil {
		return nil, err
	}
	if f, err = f.Explode("role_", ","); err != nil {
		return nil, err
	}
	if f, err = f.MapColumn("role_", NormalizeRole); err != nil {
		return nil, err
	}
	return f.DropDuplicates(opts.Dedupe), nil
}
