package model

import (
	"errors"
	"fmt"
	"strings"
)

// Storage implementations wrap these sentinels per entity, e.g.
// "attendance: already exists", so callers match with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

func NewError(entity string, err error) error {
	return fmt.Errorf("%s: %w", strings.ToLower(entity), err)
}
