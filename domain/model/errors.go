// Package model provides domain model for utfall
package model

import "errors"

var (
	// ErrEmptyManifest is returned when a manifest has no columns
	ErrEmptyManifest = errors.New("empty column manifest")

	// ErrEmptyColumnName is returned when a column definition has no name
	ErrEmptyColumnName = errors.New("empty column name")

	// ErrDuplicateColumnName is returned when a manifest contains duplicate column names
	ErrDuplicateColumnName = errors.New("duplicate column name")
)
