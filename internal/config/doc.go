// Package config loads and validates configuration for the back-office API.
//
// Values come from environment variables, parsed with caarlos0/env. In
// development, cmd/server loads a .env file first so local overrides work
// without exporting anything:
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS, log level)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: signing keys and token lifetimes
//   - StorageConfig: upload root, public URL, size and content-type limits
//   - AuthConfig: sign-in throttling
//   - TelemetryConfig: OTLP trace export
//   - JobsConfig: background job intervals
//
// Validate collects every problem with errors.Join so a misconfigured
// deployment reports all of them at once.
package config
