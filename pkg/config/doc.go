// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct tag parsing. Each configuration type
// is parsed once and cached for the life of the process:
//
//	var sess session.Config
//	config.MustLoad(&sess)
//
//	var rdb redis.Config
//	config.MustLoad(&rdb)
//
// LoadEnv reads explicit .env files before the first Load. ResetCache and
// ForceReloadConfig exist for tests that change the environment.
package config
