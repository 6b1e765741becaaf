// Command loginbot logs into the CEDSa Postítulos campus with credentials
// from a key=value file, waits a fixed delay, and opens the diplomatura
// course page. The browser runs headless unless --show is passed.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/jawher/mow.cli"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/mariocorte/bots/internal/browser"
	"github.com/mariocorte/bots/internal/campus"
	"github.com/mariocorte/bots/internal/config"
	"github.com/mariocorte/bots/internal/credentials"
	"github.com/mariocorte/bots/internal/history"
)

func main() {
	app := cli.App("loginbot", "Log into the CEDSa Postítulos campus and open the diplomatura course")
	app.Spec = "CREDENTIALS [--show]"

	var (
		credPath = app.StringArg("CREDENTIALS", "", "path to the credentials file (username=..., password=...)")
		show     = app.BoolOpt("show", false, "run the browser with a visible window instead of headless mode")
	)

	app.Action = func() {
		if err := run(*credPath, *show); err != nil {
			slog.Error("fatal error", "error", err)
			cli.Exit(1)
		}
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(credPath string, show bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Credentials are validated before any browser interaction.
	creds, err := credentials.Load(credPath)
	if err != nil {
		return err
	}
	slog.Info("credentials loaded", "path", credPath, "username", creds.Username)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run history is bookkeeping; a broken database never blocks the login.
	var runs *history.RunRepo
	if db, err := history.Open(cfg.DBPath); err != nil {
		slog.Warn("run history unavailable", "path", cfg.DBPath, "error", err)
	} else {
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing run history database", "error", closeErr)
			}
		}()
		if err := history.RunMigrations(db.Writer); err != nil {
			slog.Warn("run history migrations failed", "error", err)
		} else {
			runs = history.NewRunRepo(db)
		}
	}

	session, err := browser.New(browser.Options{Headless: !show})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			slog.Error("error closing browser", "error", closeErr)
		}
	}()
	slog.Info("browser session started", "headless", !show)

	client := campus.NewClient(session.Browser(), cfg.LoginURL, cfg.CourseURL, cfg.ElementTimeout)

	started := time.Now()
	seqErr := sequence(ctx, client, creds, cfg.NavDelay)
	record(runs, started, seqErr)

	return seqErr
}

// sequence is the bot's single linear flow: log in, wait the fixed delay,
// open the course page.
func sequence(ctx context.Context, client *campus.Client, creds *credentials.Credentials, navDelay time.Duration) error {
	if err := client.Login(ctx, creds); err != nil {
		return err
	}
	slog.Info("login submitted")

	select {
	case <-time.After(navDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := client.OpenDiplomatura(ctx); err != nil {
		return err
	}

	url, err := client.CurrentURL()
	if err != nil {
		return err
	}
	slog.Info("diplomatura page opened", "url", url)
	return nil
}

// record persists the run outcome when the history store is available. It
// uses its own short-lived context so an interrupted run is still recorded.
func record(runs *history.RunRepo, started time.Time, seqErr error) {
	if runs == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	run := history.Run{
		Bot:        "loginbot",
		Outcome:    history.OutcomeOK,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if seqErr != nil {
		run.Outcome = history.OutcomeError
		run.Detail = seqErr.Error()
	}

	if err := runs.Record(ctx, run); err != nil {
		slog.Warn("could not record run", "error", err)
	}
}
