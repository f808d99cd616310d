// Package cli wires the imdbsql commands together.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/JonMunkholm/imdbsql/internal/config"
	"github.com/JonMunkholm/imdbsql/internal/core"
	_ "github.com/JonMunkholm/imdbsql/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/imdbsql/internal/logging"
)

// ConfigureLogging is exported for testing purposes
var ConfigureLogging = logging.Setup

type CLI struct {
	stdout io.Writer
}

func New() *CLI {
	return &CLI{stdout: os.Stdout}
}

// WithStdout replaces where command results (not logs) are printed.
func (x *CLI) WithStdout(w io.Writer) *CLI {
	x.stdout = w
	return x
}

func (x *CLI) Run(ctx context.Context, argv []string) error {
	cfg, err := config.Load()
	if err != nil {
		logging.Default().Error("invalid configuration", "error", err)
		return err
	}

	var (
		logLevel  string
		logFormat string
		logOutput string
	)

	app := &cli.Command{
		Name:   "imdbsql",
		Usage:  "Normalize the IMDb datasets into relational tables",
		Writer: x.stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [debug|info|warn|error]",
				Aliases:     []string{"l"},
				Destination: &logLevel,
				Value:       cfg.Logging.Level,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				Aliases:     []string{"f"},
				Destination: &logFormat,
				Value:       cfg.Logging.Format,
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [-|stdout|stderr|<file>]",
				Aliases:     []string{"o"},
				Destination: &logOutput,
				Value:       cfg.Logging.Output,
			},
		},
		Commands: []*cli.Command{
			unzipCommand(cfg),
			convertCommand(cfg),
			loadCommand(cfg),
			resetCommand(cfg),
			posterCommand(cfg, x.stdout),
			tablesCommand(x.stdout),
			envCommand(x.stdout),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := ConfigureLogging(logLevel, logFormat, logOutput); err != nil {
				return ctx, err
			}
			logging.Default().Debug("configuration loaded", "config", cfg)
			return ctx, nil
		},
	}

	defer logging.Close()

	if err := app.Run(ctx, argv); err != nil {
		logging.Default().Error(core.FormatUserError(err),
			"error", err,
			"code", core.MapError(err).Code,
		)
		return err
	}

	return nil
}

// requireDir fails when path is not an existing directory.
func requireDir(path, flag string) error {
	st, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "directory is not accessible", goerr.V("flag", flag), goerr.V("path", path))
	}
	if !st.IsDir() {
		return goerr.New("not a directory", goerr.V("flag", flag), goerr.V("path", path))
	}
	return nil
}
