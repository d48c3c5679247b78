package cli

import (
	"fmt"
	"strconv"
)

// Environment variables consulted for option defaults.
const (
	envLogLevel  = "DATAMIX_LOG_LEVEL"
	envPrecision = "DATAMIX_PRECISION"
)

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(getenv func(string) string, key string, fallback int) (int, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", key, v)
	}

	return n, nil
}
