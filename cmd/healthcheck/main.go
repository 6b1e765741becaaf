// Command healthcheck probes the campus login URL and exits 0 when the
// portal answers. Intended as a container healthcheck before running bots.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/mariocorte/bots/internal/config"
)

func main() {
	os.Exit(check())
}

func check() int {
	cfg, err := config.Load()
	if err != nil {
		return 1
	}

	client := &http.Client{Timeout: 5 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.LoginURL, nil)
	if err != nil {
		return 1
	}

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	_ = resp.Body.Close()

	// Redirects are followed by the client; anything below 400 means the
	// portal is up.
	if resp.StatusCode >= 400 {
		return 1
	}

	return 0
}
