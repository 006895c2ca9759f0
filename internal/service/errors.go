package service

import "errors"

// ErrNotFound is returned when an id/owner pair does not resolve to a row.
var ErrNotFound = errors.New("record not found")
