// Package config holds the glossary settings resolved from viper, the
// environment and .env files, plus the genre and category tables used in
// every prompt.
package config
