package storage

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("not found")

	ErrCorruptBlock = errors.New("stored block is corrupt")
)
