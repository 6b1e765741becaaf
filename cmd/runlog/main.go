// Command runlog lists recent bot runs recorded in the run-history database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	cli "github.com/jawher/mow.cli"

	"github.com/mariocorte/bots/internal/config"
	"github.com/mariocorte/bots/internal/history"
)

func main() {
	app := cli.App("runlog", "List recent bot runs from the run history")
	app.Spec = "[--limit] [BOT]"

	var (
		limit = app.IntOpt("limit", 20, "maximum number of runs to list")
		bot   = app.StringArg("BOT", "loginbot", "bot name to list runs for")
	)

	app.Action = func() {
		if err := run(*bot, *limit); err != nil {
			slog.Error("fatal error", "error", err)
			cli.Exit(1)
		}
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(bot string, limit int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := history.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing run history database", "error", closeErr)
		}
	}()

	if err := history.RunMigrations(db.Writer); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs, err := history.NewRunRepo(db).Recent(ctx, bot, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Printf("no recorded runs for %s\n", bot)
		return nil
	}
	for _, r := range runs {
		fmt.Println(formatRun(r))
	}
	return nil
}

// formatRun renders one run as a single line: UTC start time, outcome,
// duration, and the error detail when present.
func formatRun(r history.Run) string {
	line := fmt.Sprintf("%s  %-5s  %s",
		r.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		r.Outcome,
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
	)
	if r.Detail != "" {
		line += "  " + r.Detail
	}
	return line
}
