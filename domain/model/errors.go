package model

import "errors"

// ErrFieldCount is returned when a record has more fields than the header
var ErrFieldCount = errors.New("wrong number of fields")
