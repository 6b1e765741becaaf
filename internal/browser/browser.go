// Package browser manages the lifecycle of the automated Chromium session.
package browser

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Options controls how the browser session is launched.
type Options struct {
	// Headless runs the browser without a visible window. This is the
	// default operating mode; the loginbot --show flag disables it.
	Headless bool
}

// Session is a scoped browser resource: acquired once at start, used for the
// full run, released with Close on completion.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// New launches a local Chromium and connects to it. The sandbox and GPU are
// disabled so the bots run inside containers without extra privileges.
func New(opts Options) (*Session, error) {
	l := launcher.New().
		Headless(opts.Headless).
		Set("disable-gpu").
		Set("no-sandbox").
		Set("disable-dev-shm-usage")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	return &Session{browser: b, launcher: l}, nil
}

// Browser exposes the underlying rod browser for page automation.
func (s *Session) Browser() *rod.Browser {
	return s.browser
}

// Close shuts the browser down and removes the launcher's temp data dir.
func (s *Session) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}
