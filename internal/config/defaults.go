package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel       = "info"
	DefaultJSONLog        = false
	DefaultUserAgent      = "Mozilla/5.0"
	DefaultHTTPTimeout    = 8 * time.Second
	DefaultConcurrency    = 10
	MaxConcurrency        = 50
	DefaultRateLimitRPS   = 2.0
	DefaultRateLimitBurst = 4
	DefaultRetries        = 1
	DefaultSources        = "google,idealo"
	DefaultAPIEndpoint    = "https://api.serpstack.com/search"
)
