package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/JonMunkholm/imdbsql/internal/config"
	"github.com/JonMunkholm/imdbsql/internal/logging"
	"github.com/JonMunkholm/imdbsql/internal/scraper"
)

func posterCommand(cfg *config.Config, stdout io.Writer) *cli.Command {
	var (
		baseURL   string
		userAgent string
		timeout   time.Duration
	)

	return &cli.Command{
		Name:      "poster",
		Aliases:   []string{"p"},
		Usage:     "Print the poster image URL of each title",
		ArgsUsage: "TITLE_ID...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "base-url",
				Usage:       "Site the title pages are fetched from",
				Destination: &baseURL,
				Value:       cfg.Scraper.BaseURL,
			},
			&cli.StringFlag{
				Name:        "user-agent",
				Usage:       "User-Agent header sent with each request",
				Destination: &userAgent,
				Value:       cfg.Scraper.UserAgent,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "Timeout for a single title page request",
				Destination: &timeout,
				Value:       cfg.Scraper.Timeout,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ids := c.Args().Slice()
			if len(ids) == 0 {
				return goerr.New("at least one title id is required")
			}

			client := scraper.New(
				scraper.WithBaseURL(baseURL),
				scraper.WithUserAgent(userAgent),
				scraper.WithTimeout(timeout),
			)
			return runPoster(ctx, client, ids, stdout)
		},
	}
}

// runPoster prints "id<TAB>url" for each title it resolves. A failure is
// logged and the remaining titles are still tried.
func runPoster(ctx context.Context, client *scraper.Client, ids []string, stdout io.Writer) error {
	var (
		lastErr error
		failed  int
	)
	for _, id := range ids {
		poster, err := client.FetchPosterURL(ctx, id)
		if err != nil {
			logging.From(ctx).Warn("failed to fetch poster", "title_id", id, "error", err)
			lastErr = err
			failed++
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\n", id, poster)
	}

	if lastErr != nil {
		return goerr.Wrap(lastErr, "failed to fetch posters", goerr.V("failed", failed), goerr.V("total", len(ids)))
	}
	return nil
}
