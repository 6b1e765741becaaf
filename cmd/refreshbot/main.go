// Command refreshbot opens a page on the campus and reloads it on a fixed
// interval until interrupted. Defaults to the diplomatura course page.
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
)

func main() {
	app := cli.App("refreshbot", "Keep a campus page fresh by reloading it periodically")
	app.Spec = "[--interval] [--show] [URL]"

	var (
		interval = app.StringOpt("interval", "10m", "time between reloads (Go duration)")
		show     = app.BoolOpt("show", false, "run the browser with a visible window instead of headless mode")
		pageURL  = app.StringArg("URL", "", "page to watch (defaults to the diplomatura course page)")
	)

	app.Action = func() {
		if err := run(*pageURL, *interval, *show); err != nil {
			slog.Error("fatal error", "error", err)
			cli.Exit(1)
		}
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(pageURL, interval string, show bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	every, err := time.ParseDuration(interval)
	if err != nil {
		return err
	}

	if pageURL == "" {
		pageURL = cfg.CourseURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.New(browser.Options{Headless: !show})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			slog.Error("error closing browser", "error", closeErr)
		}
	}()

	client := campus.NewClient(session.Browser(), cfg.LoginURL, cfg.CourseURL, cfg.ElementTimeout)

	if err := client.Open(ctx, pageURL); err != nil {
		return err
	}
	slog.Info("watching page", "url", pageURL, "interval", every)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refreshbot stopped")
			return nil
		case <-ticker.C:
			if err := client.Refresh(ctx); err != nil {
				return err
			}
			slog.Info("page refreshed", "url", pageURL)
		}
	}
}
