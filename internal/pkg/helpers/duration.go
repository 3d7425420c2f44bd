package helpers

import "time"

// ParseDuration parses a duration string, returning the fallback when
// the string is empty or invalid.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
