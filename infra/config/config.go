package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application-level configuration.
type Config struct {
	APIBaseURL string // e.g. "https://chirpd.example.com"
	TokenPath  string // Path to file containing the bearer token
	FeedLimit  int    // Chirps fetched per timeline page
	MaxDepth   int    // Nesting level past which the reply affordance is withheld
}

const (
	defaultFeedLimit = 20
	defaultMaxDepth  = 5
)

// Load reads configuration from the environment, honoring a local
// .env file when present.
//
//	CHIRPTERM_API       — chirpd base URL, https only (required)
//	CHIRPTERM_TOKEN     — path to token file (default: ~/.config/chirpterm/token)
//	CHIRPTERM_LIMIT     — feed page size (default: 20)
//	CHIRPTERM_MAX_DEPTH — reply nesting cap (default: 5)
func Load() (Config, error) {
	// Missing .env is fine; the environment alone is a valid source.
	_ = godotenv.Load()

	api := os.Getenv("CHIRPTERM_API")
	if api == "" {
		return Config{}, fmt.Errorf("CHIRPTERM_API is required")
	}
	parsed, err := url.Parse(api)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid CHIRPTERM_API: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid CHIRPTERM_API: only https is allowed")
	}
	api = strings.TrimRight(parsed.String(), "/")

	tokenPath := os.Getenv("CHIRPTERM_TOKEN")
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		tokenPath = filepath.Join(home, ".config", "chirpterm", "token")
	}

	limit, err := intFromEnv("CHIRPTERM_LIMIT", defaultFeedLimit)
	if err != nil {
		return Config{}, err
	}

	maxDepth, err := intFromEnv("CHIRPTERM_MAX_DEPTH", defaultMaxDepth)
	if err != nil {
		return Config{}, err
	}

	return Config{
		APIBaseURL: api,
		TokenPath:  tokenPath,
		FeedLimit:  limit,
		MaxDepth:   maxDepth,
	}, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
