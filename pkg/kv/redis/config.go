package redis

import "time"

// Config configures the Redis backend. ConnectionURL uses the
// redis://:password@host:6379/0 form.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`

	// ScanBatchSize is the SCAN COUNT hint used by List.
	ScanBatchSize int `env:"REDIS_SCAN_BATCH_SIZE" envDefault:"1000"`
}
