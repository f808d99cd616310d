package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/JonMunkholm/imdbsql/internal/config"
	"github.com/JonMunkholm/imdbsql/internal/loader"
	"github.com/JonMunkholm/imdbsql/internal/logging"
)

func loadCommand(cfg *config.Config) *cli.Command {
	var (
		outDir      string
		databaseURL string
		migrate     bool
		opts        loader.Options
	)

	return &cli.Command{
		Name:    "load",
		Aliases: []string{"l"},
		Usage:   "Bulk load the normalized tables into PostgreSQL",
		Flags: []cli.Flag{
			outDirFlag(cfg, &outDir),
			&cli.StringFlag{
				Name:        "database-url",
				Usage:       "PostgreSQL connection string",
				Destination: &databaseURL,
				Value:       cfg.Database.URL,
			},
			&cli.BoolFlag{
				Name:        "truncate",
				Usage:       "Empty each table before loading it",
				Destination: &opts.Truncate,
				Value:       cfg.Database.Truncate,
			},
			&cli.BoolFlag{
				Name:        "migrate",
				Usage:       "Create or update the schema before loading",
				Destination: &migrate,
			},
			&cli.StringSliceFlag{
				Name:        "table",
				Aliases:     []string{"t"},
				Usage:       "Only load this table, e.g. title_ratings (repeatable)",
				Destination: &opts.Tables,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if databaseURL == "" {
				return goerr.New("database url is required, set DATABASE_URL or --database-url")
			}
			if err := requireDir(outDir, "out"); err != nil {
				return err
			}
			return runLoad(ctx, outDir, databaseURL, migrate, opts)
		},
	}
}

func runLoad(ctx context.Context, outDir, databaseURL string, migrate bool, opts loader.Options) error {
	logger := logging.From(ctx)
	logger.Info("Starting load",
		slog.String("out_dir", outDir),
		slog.Bool("truncate", opts.Truncate),
		slog.Bool("migrate", migrate),
		slog.Any("tables", opts.Tables),
	)

	if migrate {
		if err := loader.Migrate(ctx, databaseURL); err != nil {
			return goerr.Wrap(err, "failed to migrate database")
		}
	}

	l, err := loader.Connect(ctx, databaseURL)
	if err != nil {
		return goerr.Wrap(err, "failed to connect to database")
	}
	defer l.Close()

	results, err := l.Load(ctx, outDir, opts)
	if err != nil {
		return goerr.Wrap(err, "load failed")
	}

	var rows int64
	loaded := 0
	for _, r := range results {
		if r.Skipped {
			continue
		}
		loaded++
		rows += r.Rows
	}
	logger.Info("Load completed successfully",
		slog.Int("tables", loaded),
		slog.Int("skipped", len(results)-loaded),
		slog.Int64("rows", rows),
	)
	return nil
}

func resetCommand(cfg *config.Config) *cli.Command {
	var (
		databaseURL string
		tables      []string
	)

	return &cli.Command{
		Name:  "reset",
		Usage: "Truncate the loaded tables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "database-url",
				Usage:       "PostgreSQL connection string",
				Destination: &databaseURL,
				Value:       cfg.Database.URL,
			},
			&cli.StringSliceFlag{
				Name:        "table",
				Aliases:     []string{"t"},
				Usage:       "Only truncate this table (repeatable)",
				Destination: &tables,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if databaseURL == "" {
				return goerr.New("database url is required, set DATABASE_URL or --database-url")
			}

			l, err := loader.Connect(ctx, databaseURL)
			if err != nil {
				return goerr.Wrap(err, "failed to connect to database")
			}
			defer l.Close()

			if err := l.Reset(ctx, tables); err != nil {
				return goerr.Wrap(err, "failed to reset tables", goerr.V("tables", tables))
			}
			logging.From(ctx).Info("tables reset", slog.Any("tables", tables))
			return nil
		},
	}
}
