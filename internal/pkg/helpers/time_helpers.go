package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the text layout used for dates of birth.
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// The logger may not be configured yet when config values are parsed.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// IsDate reports whether s is a calendar date in DateLayout.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// NowUTC returns the current time in UTC truncated to microseconds, the
// precision both supported databases round-trip.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
