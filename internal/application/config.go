package application

import "time"

// Config carries the tunables of the application services. Zero values
// fall back to the package defaults.
type Config struct {
	ScrapeThreshold float64
	MaxAttempts     int
	AttemptDelay    time.Duration
	HistoryWindow   int
	MaxReplyRunes   int
}

func (c Config) scrapeThreshold() float64 {
	if c.ScrapeThreshold <= 0 {
		return defaultScrapeThreshold
	}
	return c.ScrapeThreshold
}

func (c Config) maxAttempts() int {
	if c.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return c.MaxAttempts
}

func (c Config) attemptDelay() time.Duration {
	if c.AttemptDelay <= 0 {
		return defaultAttemptDelay
	}
	return c.AttemptDelay
}

func (c Config) historyWindow() int {
	if c.HistoryWindow <= 0 {
		return defaultHistoryWindow
	}
	return c.HistoryWindow
}

func (c Config) maxReplyRunes() int {
	if c.MaxReplyRunes <= 0 {
		return defaultMaxReplyRunes
	}
	return c.MaxReplyRunes
}
