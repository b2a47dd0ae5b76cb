package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/v1k45/gogett/internal/config"
	"github.com/v1k45/gogett/internal/services/gett"
)

// Container centralizes the core dependencies used across the application.
// It is intentionally small and uses interfaces so callers (and tests) can
// substitute implementations easily.
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Gett        gett.ClientAPI
	VerifyLogin bool
}

// Option allows customizing the container during construction.
type Option func(*Container) error

// WithLogger overrides the default logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Container) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithGettClient overrides the default Ge.tt client.
func WithGettClient(client gett.ClientAPI) Option {
	return func(c *Container) error {
		if client == nil {
			return fmt.Errorf("gett client cannot be nil")
		}
		c.Gett = client
		return nil
	}
}

// WithLoginVerification enables or disables the eager credential check
// performed at construction time (default: enabled).
func WithLoginVerification(verify bool) Option {
	return func(c *Container) error {
		c.VerifyLogin = verify
		return nil
	}
}

// NewContainer builds a Container with sensible defaults derived from cfg.
// Options can be supplied to override specific dependencies (useful in tests).
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	container := &Container{
		Config:      cfg,
		Logger:      buildDefaultLogger(cfg.Loglevel),
		VerifyLogin: true,
	}

	// Apply options early so tests can inject mocks before defaults are created.
	for _, opt := range opts {
		if err := opt(container); err != nil {
			return nil, err
		}
	}

	if container.Gett == nil {
		creds := gett.Credentials{
			APIKey:   cfg.Gett.APIKey,
			Email:    cfg.Gett.Email,
			Password: cfg.Gett.Password,
		}
		clientOpts := []gett.Option{gett.WithLogger(container.Logger)}
		if cfg.Gett.BaseURL != "" {
			clientOpts = append(clientOpts, gett.WithBaseURL(cfg.Gett.BaseURL))
		}
		client, err := gett.NewClient(creds, clientOpts...)
		if err != nil {
			return nil, err
		}
		container.Gett = client
	}

	if container.VerifyLogin {
		if _, err := container.Gett.AccessToken(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to verify Ge.tt credentials: %w", err)
		}
	}

	return container, nil
}

func buildDefaultLogger(levelStr string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
