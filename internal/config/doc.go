// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. Besides the HTTP settings it selects the
// seat target, the apportionment methods and their tuning, and the population
// table to apportion.
package config
