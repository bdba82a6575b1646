package redis

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("kv.redis.empty_url")
	ErrInvalidURL         = errors.New("kv.redis.invalid_url")
	ErrNotReady           = errors.New("kv.redis.not_ready")
	ErrUnhealthy          = errors.New("kv.redis.unhealthy")
)
