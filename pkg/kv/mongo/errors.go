package mongo

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("kv.mongo.empty_url")
	ErrConnect            = errors.New("kv.mongo.connect_failed")
	ErrUnhealthy          = errors.New("kv.mongo.unhealthy")
)
