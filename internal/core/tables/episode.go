package tables

import (
	"github.com/JonMunkholm/imdbsql/internal/core"
)

func init() {
	registerEpisodeBelongsTo()
}

func registerEpisodeBelongsTo() {
	core.Register(core.OutputDefinition{
		Info: core.TableInfo{
			Key:        "episode_belongs_to",
			Source:     "title.episode",
			Label:      "Episode belongs to",
			FileName:   "Episode_belongs_to.tsv",
			PrimaryKey: []string{"title_id"},
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "title_id", Type: core.FieldText},
			{Name: "parent_tv_show_title_id", Type: core.FieldText},
			{Name: "season_number", Type: core.FieldInt, Nullable: true},
			{Name: "episode_number", Type: core.FieldInt, Nullable: true},
		},
		Build: projection(
			column{"tconst", "title_id"},
			column{"parentTconst", "parent_tv_show_title_id"},
			column{"seasonNumber", "season_number"},
			column{"episodeNumber", "episode_number"},
		),
	})
}
