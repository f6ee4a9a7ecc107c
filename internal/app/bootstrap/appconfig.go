// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request body size limits.
// AppConfig is where everything specific to this application lives. All
// of it is injected at process start; nothing reads the environment at
// call time.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Bearer token configuration
	JWTSecret string        // HS256 signing secret (must be strong in production)
	JWTExpiry time.Duration // Token validity window (e.g., 24h)

	// CORS configuration for the SPA client
	CORSOrigin string // Allowed origin; "*" during development

	// Admin account bootstrap (seeded at Startup when username and
	// password are both set)
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}
