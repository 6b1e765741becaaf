// Package config loads bot configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Default targets on the CEDSa Postítulos campus. Overridable through the
// environment so the bots can be pointed at a staging portal.
const (
	DefaultLoginURL  = "https://campusvirtual.cedsa.edu.ar/postitulo/login/index.php"
	DefaultCourseURL = "https://campusvirtual.cedsa.edu.ar/postitulo/course/view.php?id=38"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	LoginURL       string
	CourseURL      string
	NavDelay       time.Duration
	ElementTimeout time.Duration
	DBPath         string
}

// Load reads configuration from environment variables and returns a validated
// Config. A .env file in the working directory is loaded first when present.
// Optional variables with defaults: CAMPUSBOT_LOGIN_URL, CAMPUSBOT_COURSE_URL,
// CAMPUSBOT_NAV_DELAY (10s), CAMPUSBOT_ELEMENT_TIMEOUT (20s),
// CAMPUSBOT_DB_PATH (campusbot.db).
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	loginURL := DefaultLoginURL
	if v, ok := os.LookupEnv("CAMPUSBOT_LOGIN_URL"); ok && v != "" {
		loginURL = v
	}

	courseURL := DefaultCourseURL
	if v, ok := os.LookupEnv("CAMPUSBOT_COURSE_URL"); ok && v != "" {
		courseURL = v
	}

	navDelay := 10 * time.Second
	if v, ok := os.LookupEnv("CAMPUSBOT_NAV_DELAY"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CAMPUSBOT_NAV_DELAY has invalid duration %q: %w", v, err)
		}
		navDelay = parsed
	}

	elementTimeout := 20 * time.Second
	if v, ok := os.LookupEnv("CAMPUSBOT_ELEMENT_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CAMPUSBOT_ELEMENT_TIMEOUT has invalid duration %q: %w", v, err)
		}
		elementTimeout = parsed
	}

	dbPath := "campusbot.db"
	if v, ok := os.LookupEnv("CAMPUSBOT_DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		LoginURL:       loginURL,
		CourseURL:      courseURL,
		NavDelay:       navDelay,
		ElementTimeout: elementTimeout,
		DBPath:         dbPath,
	}, nil
}
