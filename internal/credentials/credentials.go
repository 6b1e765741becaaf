// Package credentials loads the campus login credentials from a key=value file.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingFile indicates the credentials file does not exist or cannot be read.
var ErrMissingFile = errors.New("credentials file missing or unreadable")

// ErrMissingField indicates a required field was never set or is empty after parsing.
var ErrMissingField = errors.New("missing credential field")

// Credentials holds the username/password pair used to fill the login form.
// It is built once at process start and never mutated.
type Credentials struct {
	Username string
	Password string
}

// Load parses the file at path into a Credentials value.
//
// Recognized lines have the form "key=value" where key is exactly "username"
// or "password". The value is everything after the first "=", unmodified.
// Blank lines, lines starting with "#", lines without "=", and unknown keys
// are ignored. When a key appears more than once, the last occurrence wins.
//
// Returns an error wrapping ErrMissingFile when the file cannot be read, and
// an error wrapping ErrMissingField when either field is absent or empty.
func Load(path string) (*Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingFile, err)
	}
	defer f.Close()

	creds := &Credentials{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		switch strings.TrimSpace(key) {
		case "username":
			creds.Username = value
		case "password":
			creds.Password = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingFile, err)
	}

	if creds.Username == "" {
		return nil, fmt.Errorf("%w: username", ErrMissingField)
	}
	if creds.Password == "" {
		return nil, fmt.Errorf("%w: password", ErrMissingField)
	}

	return creds, nil
}
