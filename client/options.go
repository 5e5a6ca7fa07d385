package client

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/davinci-studio/imagine/common"
	"github.com/davinci-studio/imagine/internal/logging"
)

// Option is a function type for configuring the Client.
type Option func(*Client)

// WithLogger sets the logger used for all client logging.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLogLevel sets the log level on the client's logger.
func WithLogLevel(level common.LogLevel) Option {
	return func(c *Client) {
		c.logger.SetLevel(level)
	}
}

// WithTimeout bounds each adapter call. Expiry surfaces as a timeout-coded
// failure response rather than an error.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit spaces out batch generations, one token per interval. Zero
// disables limiting.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

// WithMaxConcurrent caps in-flight generations during a batch.
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxConcurrent = n
		}
	}
}
