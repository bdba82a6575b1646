package kv

import "errors"

var (
	// ErrNotFound indicates the key is absent or expired
	ErrNotFound = errors.New("kv.not_found")

	// ErrBindingNotFound indicates no store is bound under the requested name
	ErrBindingNotFound = errors.New("kv.binding_not_found")

	// ErrEmptyKey indicates an operation was attempted with an empty key
	ErrEmptyKey = errors.New("kv.empty_key")
)
