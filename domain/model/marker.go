package model

import "strings"

// FreshnessMarker is the opaque version stamp of the remote resource,
// taken verbatim from the Last-Modified response header.
// The zero value means "absent": never fetched, or the remote could not tell.
type FreshnessMarker struct {
	value string
}

// NewFreshnessMarker creates new FreshnessMarker. Surrounding whitespace is dropped
// so that a marker file ending with a newline compares equal to the header value.
func NewFreshnessMarker(s string) FreshnessMarker {
	return FreshnessMarker{value: strings.TrimSpace(s)}
}

// String returns the marker value.
func (f FreshnessMarker) String() string {
	return f.value
}

// IsZero reports whether the marker is absent.
func (f FreshnessMarker) IsZero() bool {
	return f.value == ""
}

// Equal compare FreshnessMarker.
func (f FreshnessMarker) Equal(f2 FreshnessMarker) bool {
	return f.value == f2.value
}
