package main

import "time"

// Backend names accepted by KV_BACKEND.
const (
	backendMemory   = "memory"
	backendRedis    = "redis"
	backendPostgres = "postgres"
	backendMongo    = "mongo"
)

type appConfig struct {
	Env           string        `env:"APP_ENV" envDefault:"development"`
	Name          string        `env:"APP_NAME" envDefault:"sessiond"`
	Backend       string        `env:"KV_BACKEND" envDefault:"memory"`
	SweepInterval time.Duration `env:"KV_SWEEP_INTERVAL" envDefault:"1m"`
}
