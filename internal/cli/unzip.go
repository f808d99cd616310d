package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/JonMunkholm/imdbsql/internal/archive"
	"github.com/JonMunkholm/imdbsql/internal/config"
	"github.com/JonMunkholm/imdbsql/internal/logging"
)

func dataDirFlag(cfg *config.Config, dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "data",
		Aliases:     []string{"d"},
		Usage:       "Directory holding the IMDb dataset files",
		Destination: dst,
		Value:       cfg.Paths.DataDir,
	}
}

func unzipCommand(cfg *config.Config) *cli.Command {
	var dataDir string

	return &cli.Command{
		Name:  "unzip",
		Usage: "Expand every *.gz file in the data directory",
		Flags: []cli.Flag{
			dataDirFlag(cfg, &dataDir),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireDir(dataDir, "data"); err != nil {
				return err
			}

			paths, err := archive.UnzipDir(ctx, dataDir)
			if err != nil {
				return goerr.Wrap(err, "failed to unzip dataset files", goerr.V("data_dir", dataDir))
			}

			logging.From(ctx).Info("unzip completed", "files", len(paths))
			return nil
		},
	}
}
