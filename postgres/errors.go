package postgres

import "errors"

var errWrongDriver = errors.New(`config driver is not postgres`)
