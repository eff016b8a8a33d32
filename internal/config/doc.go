// Package config loads application settings from the environment, optional
// .env files and an optional config.yaml, applies defaults and validates the
// result. Every environment variable is prefixed with GEARCAST_, e.g.
// GEARCAST_SERVER_PORT or GEARCAST_PROVIDER_RUNWARE_API_KEY.
package config
