package repository

import "errors"

var (
	ErrNotFound = errors.New("task not found")
	ErrConflict = errors.New("constraint violation")
)
