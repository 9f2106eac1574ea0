// Package config loads and validates runtime configuration for envstore.
//
// Values come from an optional `envstore.yaml` (in `.` or `config/`),
// ENVSTORE_* environment variables and CLI flags, in increasing priority.
package config
