package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
)

func init() {
	registerTitleRatings()
}

func registerTitleRatings() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:        "title_ratings",
			Source:     "title.ratings",
			Label:      "Title ratings",
			FileName:   "Title_ratings.tsv",
			PrimaryKey: []string{"title_id"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "average_rating", Type: core.FieldNumeric, Nullable: true},
			{Name: "num_votes", Type: core.FieldInt, Nullable: true},
		},
		Build: projection(
			column{"tconst", "title_id"},
			column{"averageRating", "average_rating"},
			column{"numVotes", "num_votes"},
		),
	})
}
