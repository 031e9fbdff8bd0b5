// Package config loads, normalizes, and validates pitchside configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files plus optional .env files, and honours
// environment fallbacks such as OPENROUTER_API_KEY and HF_TOKEN. The Config
// type centralizes every knob the CLI and API server need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
