package webhook

import (
	"errors"
	"net/url"
	"time"
)

// Config contains the settings for the document generation collaborator
type Config struct {
	// DocumentURL is the endpoint that accepts document generation requests
	DocumentURL string
	// Secret is the shared HMAC key used for X-Signature in both directions
	Secret string
	// Timeout bounds a single delivery attempt
	Timeout time.Duration
	// RequestsPerSecond paces outbound deliveries; zero disables pacing
	RequestsPerSecond float64
	// Burst is the limiter bucket size
	Burst int
}

// Errors for configuration validation
var (
	ErrMissingDocumentURL = errors.New("webhook: missing document URL")
	ErrInvalidDocumentURL = errors.New("webhook: document URL must be absolute http(s)")
	ErrMissingSecret      = errors.New("webhook: missing shared secret")
	ErrSecretTooShort     = errors.New("webhook: shared secret must be at least 16 bytes")
)

const minSecretLength = 16

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DocumentURL == "" {
		return ErrMissingDocumentURL
	}
	u, err := url.Parse(c.DocumentURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidDocumentURL
	}
	if err := validateSecret(c.Secret); err != nil {
		return err
	}
	return nil
}

func validateSecret(secret string) error {
	if secret == "" {
		return ErrMissingSecret
	}
	if len(secret) < minSecretLength {
		return ErrSecretTooShort
	}
	return nil
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.Timeout
}

func (c *Config) burst() int {
	if c.Burst <= 0 {
		return 1
	}
	return c.Burst
}
