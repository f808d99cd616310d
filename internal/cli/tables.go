package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/JonMunkholm/imdbsql/internal/config"
	"github.com/JonMunkholm/imdbsql/internal/core"
)

func tablesCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "List the sources and the tables derived from each",
		Action: func(ctx context.Context, c *cli.Command) error {
			printTables(stdout)
			return nil
		},
	}
}

func printTables(w io.Writer) {
	for _, src := range core.Sources() {
		fmt.Fprintf(w, "%s (%s)\n", src.Key, src.FileName)
		for _, def := range core.BySource(src.Key) {
			fmt.Fprintf(w, "  %-20s %-24s %s\n", def.Info.Key, def.Info.FileName, strings.Join(def.Info.Columns, ", "))
		}
	}
}

func envCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "env",
		Usage: "List the environment variables the commands read",
		Action: func(ctx context.Context, c *cli.Command) error {
			desc, err := config.Describe()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, desc)
			return nil
		},
	}
}
