package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"xsentiment/internal/analysis"
	"xsentiment/internal/app"
	"xsentiment/internal/config"
	"xsentiment/internal/logging"
)

const defaultTimeout = 30 * time.Second

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		slog.Error("analyze failed", "error", err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:      "analyze",
		Usage:     "Search recent posts and classify their sentiment",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Search query; positional arg is a fallback",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of posts to analyze (1-20)",
				Value:   analysis.DefaultCount,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Restrict results to a language code, e.g. en",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the yaml config file",
				Value:   "config.yaml",
				EnvVars: []string{"XSENTIMENT_CONFIG"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the whole search",
				Value: defaultTimeout,
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	query := strings.TrimSpace(c.String("query"))
	if query == "" && c.NArg() > 0 {
		query = strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	}
	if query == "" {
		return errors.New("a query is required (--query or positional argument)")
	}

	count := c.Int("count")
	if count < analysis.MinCount || count > analysis.MaxCount {
		slog.Warn("count out of range; clamping", "count", count, "max", analysis.MaxCount)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	logging.New(cfg.Log.Level, cfg.Log.Format)

	a, err := app.New(cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("failed to release model", "error", err)
		}
	}()

	timeout := c.Duration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(c.Context, timeout)
	defer cancel()

	resp, err := a.Service.Search(ctx, analysis.Request{
		Query:    query,
		Count:    analysis.ClampCount(count),
		Language: c.String("lang"),
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
