package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/JonMunkholm/imdbsql/internal/config"
	"github.com/JonMunkholm/imdbsql/internal/core"
	"github.com/JonMunkholm/imdbsql/internal/logging"
)

func outDirFlag(cfg *config.Config, dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "out",
		Usage:       "Directory the normalized tables are written to",
		Destination: dst,
		Value:       cfg.Paths.OutDir,
	}
}

func convertCommand(cfg *config.Config) *cli.Command {
	var (
		opts    core.Options
		noUnzip bool
		dedupe  string
	)

	return &cli.Command{
		Name:    "convert",
		Aliases: []string{"c"},
		Usage:   "Unzip the dataset and write every normalized table",
		Flags: slice.Flatten([]cli.Flag{
			dataDirFlag(cfg, &opts.DataDir),
			outDirFlag(cfg, &opts.OutDir),
		}, []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "source",
				Aliases:     []string{"s"},
				Usage:       "Only process this source, e.g. title.akas (repeatable)",
				Destination: &opts.Sources,
			},
			&cli.BoolFlag{
				Name:        "no-unzip",
				Usage:       "Skip expanding *.gz files before converting",
				Destination: &noUnzip,
			},
			&cli.StringFlag{
				Name:        "dedupe",
				Usage:       "Had_role duplicate handling [drop-all|keep-first]",
				Destination: &dedupe,
				Value:       cfg.Convert.HadRoleDedupe,
			},
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			mode, ok := core.ParseDedupeMode(dedupe)
			if !ok {
				return goerr.New("invalid dedupe mode, should be 'drop-all' or 'keep-first'", goerr.V("value", dedupe))
			}
			opts.Dedupe = mode
			opts.Unzip = !noUnzip

			if err := requireDir(opts.DataDir, "data"); err != nil {
				return err
			}

			return runConvert(ctx, opts)
		},
	}
}

func runConvert(ctx context.Context, opts core.Options) error {
	logging.From(ctx).Info("Starting convert",
		slog.String("data_dir", opts.DataDir),
		slog.String("out_dir", opts.OutDir),
		slog.Any("sources", opts.Sources),
		slog.Bool("unzip", opts.Unzip),
		slog.String("dedupe", string(opts.Dedupe)),
	)

	result, err := core.NewConverter().Run(ctx, opts)
	if err != nil {
		return goerr.Wrap(err, "conversion failed")
	}

	for _, src := range result.Sources {
		for _, out := range src.Outputs {
			logging.From(ctx).Info("table",
				slog.String("source", src.Key),
				slog.String("file", out.FileName),
				slog.Int("rows", out.Rows),
			)
		}
	}

	logging.From(ctx).Info("Convert completed successfully",
		slog.String("run_id", result.RunID),
		slog.Int("tables", countTables(result)),
		slog.Int("rows", result.TotalRows()),
		slog.Int("failed_rows", result.TotalFailed()),
		slog.Duration("duration", result.Duration),
	)
	return nil
}

func countTables(r *core.RunResult) int {
	n := 0
	for _, s := range r.Sources {
		n += len(s.Outputs)
	}
	return n
}
