package sqlite

import "errors"

var (
	errEmptyPath   = errors.New(`database path is empty`)
	errWrongDriver = errors.New(`config driver is not sqlite`)
)
