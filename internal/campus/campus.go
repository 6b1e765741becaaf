// Package campus drives the CEDSa Postítulos portal through a browser session.
package campus

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mariocorte/bots/internal/credentials"
)

// Literal targets on the portal's login form.
const (
	usernameSelector    = "#username"
	passwordSelector    = "#password"
	loginButtonSelector = "#loginbtn"
)

// Client automates a fixed sequence of interactions with the campus portal.
// It is single-threaded by design: one page, one linear flow, no retries.
type Client struct {
	browser        *rod.Browser
	loginURL       string
	courseURL      string
	elementTimeout time.Duration

	page *rod.Page
}

// NewClient creates a Client bound to an already-connected browser.
func NewClient(browser *rod.Browser, loginURL, courseURL string, elementTimeout time.Duration) *Client {
	return &Client{
		browser:        browser,
		loginURL:       loginURL,
		courseURL:      courseURL,
		elementTimeout: elementTimeout,
	}
}

// Open navigates a fresh page to url and waits for it to load. The page is
// kept on the client for the follow-up steps.
func (c *Client) Open(ctx context.Context, url string) error {
	page, err := c.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("open page %s: %w", url, err)
	}
	c.page = page.Context(ctx)

	if err := c.page.WaitLoad(); err != nil {
		return fmt.Errorf("load page %s: %w", url, err)
	}
	return nil
}

// Login opens the login page, fills the username and password fields and
// clicks the login button, then waits for the portal to navigate away from
// the login URL. Remaining on the login URL means the portal rejected the
// credentials.
func (c *Client) Login(ctx context.Context, creds *credentials.Credentials) error {
	if err := c.Open(ctx, c.loginURL); err != nil {
		return err
	}

	form := c.page.Timeout(c.elementTimeout)

	user, err := form.Element(usernameSelector)
	if err != nil {
		return fmt.Errorf("locate username field: %w", err)
	}
	pass, err := form.Element(passwordSelector)
	if err != nil {
		return fmt.Errorf("locate password field: %w", err)
	}
	button, err := form.Element(loginButtonSelector)
	if err != nil {
		return fmt.Errorf("locate login button: %w", err)
	}

	if err := fill(user, creds.Username); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := fill(pass, creds.Password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}

	// The wait is bounded so a portal that never navigates after the click
	// surfaces as a rejected login instead of blocking until interrupt.
	wait := c.page.Timeout(c.elementTimeout).WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click login button: %w", err)
	}
	wait()

	info, err := c.page.Info()
	if err != nil {
		return fmt.Errorf("read page info after login: %w", err)
	}
	if info.URL == c.loginURL {
		return fmt.Errorf("login rejected: still on %s", c.loginURL)
	}
	return nil
}

// OpenDiplomatura opens the diplomatura course page from the post-login
// landing page. It clicks the course link when present and falls back to
// direct navigation when the link cannot be located.
func (c *Client) OpenDiplomatura(ctx context.Context) error {
	if c.page == nil {
		return c.Open(ctx, c.courseURL)
	}

	link, err := c.page.Timeout(c.elementTimeout).Element(courseLinkSelector(c.courseURL))
	if err != nil {
		// The landing page layout varies per enrollment; the course URL
		// itself is stable.
		return c.navigateCurrent(c.courseURL)
	}

	wait := c.page.Timeout(c.elementTimeout).WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click course link: %w", err)
	}
	wait()
	return nil
}

// Refresh reloads the current page.
func (c *Client) Refresh(ctx context.Context) error {
	if c.page == nil {
		return fmt.Errorf("refresh: no page open")
	}
	if err := c.page.Context(ctx).Reload(); err != nil {
		return fmt.Errorf("reload page: %w", err)
	}
	if err := c.page.WaitLoad(); err != nil {
		return fmt.Errorf("load reloaded page: %w", err)
	}
	return nil
}

// CurrentURL reports the URL of the page the client is on.
func (c *Client) CurrentURL() (string, error) {
	if c.page == nil {
		return "", fmt.Errorf("no page open")
	}
	info, err := c.page.Info()
	if err != nil {
		return "", fmt.Errorf("read page info: %w", err)
	}
	return info.URL, nil
}

func (c *Client) navigateCurrent(url string) error {
	if err := c.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := c.page.WaitLoad(); err != nil {
		return fmt.Errorf("load page %s: %w", url, err)
	}
	return nil
}

// fill replaces an input's current content with value, matching the
// clear-then-send-keys behavior the portal's form expects.
func fill(el *rod.Element, value string) error {
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(value)
}

// courseLinkSelector matches an anchor pointing at the course URL.
func courseLinkSelector(courseURL string) string {
	return fmt.Sprintf("a[href=%q]", courseURL)
}
