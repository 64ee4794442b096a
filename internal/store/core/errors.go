package core

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownTable = errors.New("unknown table")
	ErrInvalid      = errors.New("invalid")
)
