package retry

import "time"

// RetryConfig tunes the backoff applied to generation-service calls.
// Delay is the initial backoff; it doubles on every attempt up to MaxDelay.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"2s"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"30s"`
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: 3,
		Delay:    2 * time.Second,
		MaxDelay: 30 * time.Second,
	}
}
