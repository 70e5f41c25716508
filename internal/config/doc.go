// Package config defines the application configuration structure and the
// loader that populates it from environment variables and optional config
// files. All settings are validated before the application starts.
package config
