// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ezinulo/pricefinder/internal/config"
	"github.com/ezinulo/pricefinder/internal/credential"
	"github.com/ezinulo/pricefinder/internal/ratelimit"
	"github.com/ezinulo/pricefinder/internal/retry"
	"github.com/ezinulo/pricefinder/internal/source"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It configures logging from the provided config, creates the per-host rate
// limiter, and initializes the shared HTTP client (with an optional proxy).
// If any step fails, an error is returned and no resources are allocated.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Initialize logger based on config
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	default:
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	// Create rate limiter
	rateLimiter := ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	// Create HTTP client
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", cfg.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Msg("HTTP client initialized")

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		RateLimiter: rateLimiter,
		HTTPClient:  httpClient,
		startTime:   time.Now(),
	}

	logger.Debug().Msg("Application initialized successfully")
	return app, nil
}

// Sources builds the lookup clients named in names, in order. Known names
// are "google", "idealo" and "api". The api client needs a stored access
// key; without one the error tells the user how to set it. Each client is
// wrapped with the retry policy when retries > 1.
func (a *Application) Sources(names []string, retries int) ([]source.Client, error) {
	opts := source.Options{
		Client:    a.HTTPClient,
		Limiter:   a.RateLimiter,
		UserAgent: a.Config.UserAgent,
		Timeout:   a.Config.HTTPTimeout,
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = retries

	clients := make([]source.Client, 0, len(names))
	for _, name := range names {
		var c source.Client
		switch name {
		case "google":
			c = source.NewGoogle(opts)
		case "idealo":
			c = source.NewIdealo(opts)
		case "api":
			key, err := credential.Load()
			if err != nil {
				return nil, fmt.Errorf("the api source needs an access key: set %s or run 'pricefinder key set'", credential.EnvAccessKey)
			}
			apiOpts := opts
			apiOpts.BaseURL = a.Config.APIEndpoint
			c = source.NewSerpstack(key, apiOpts)
		default:
			return nil, fmt.Errorf("unknown source %q (known: google, idealo, api)", name)
		}
		clients = append(clients, source.WithRetry(c, retryCfg))
	}

	if len(clients) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}
	return clients, nil
}

// Close gracefully shuts down the application and all its resources.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Msg("Shutting down application")

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
