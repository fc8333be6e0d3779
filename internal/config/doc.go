// Package config loads and validates application settings from an
// optional config file and from environment variables, exposing them as a
// typed Config struct so the rest of the application never touches raw
// configuration sources.
package config
