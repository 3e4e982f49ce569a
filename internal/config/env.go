package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/dtvchat/internal/errors"
)

// Environment variables read by dtvchat
const (
	EnvBackendURL       = "DTV_BACKEND_URL"
	EnvPublicBackendURL = "NEXT_PUBLIC_BACKEND_URL"
	EnvConfigDir        = "DTV_CONFIG_DIR"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Variables already set are not overridden
// and missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ResolveBackendURL picks the reply service base URL. The first non-empty
// source wins: the explicit override (the --backend-url flag),
// DTV_BACKEND_URL, NEXT_PUBLIC_BACKEND_URL, then the config file.
func ResolveBackendURL(override string, cfg Config) (string, error) {
	candidates := []string{
		override,
		os.Getenv(EnvBackendURL),
		os.Getenv(EnvPublicBackendURL),
		cfg.BackendURL,
	}

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		return ValidateBackendURL(c)
	}

	return "", apierrors.NewMissingBackendURLError()
}

// ValidateBackendURL checks that raw is an absolute http(s) URL and returns
// it without trailing slashes
func ValidateBackendURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", apierrors.NewMissingBackendURLError()
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", apierrors.NewConfigError("backend URL is invalid: "+err.Error(), apierrors.ErrInvalidBackendURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apierrors.NewConfigError("backend URL must use http or https: "+raw, apierrors.ErrInvalidBackendURL)
	}
	if u.Host == "" {
		return "", apierrors.NewConfigError("backend URL has no host: "+raw, apierrors.ErrInvalidBackendURL)
	}

	return raw, nil
}
