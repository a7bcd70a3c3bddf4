package goGuard

import "errors"

var (
	// ErrStoreRequired is returned by Build when neither a store nor a Redis client was supplied.
	ErrStoreRequired = errors.New("token store required")
	// ErrBuilderUsed is returned by Build on a Builder that already produced an Engine.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrInvalidConfig wraps Config.Validate failures surfaced by Build.
	ErrInvalidConfig = errors.New("invalid config")
)
