package pg

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("kv.pg.empty_url, set PG_CONN_URL")
	ErrInvalidURL         = errors.New("kv.pg.invalid_url")
	ErrConnect            = errors.New("kv.pg.connect_failed")
	ErrUnhealthy          = errors.New("kv.pg.unhealthy")
	ErrMigrate            = errors.New("kv.pg.migrate_failed")
	ErrInvalidTableName   = errors.New("kv.pg.invalid_table_name")
)
