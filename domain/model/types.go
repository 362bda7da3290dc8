// Package model provides domain model for utfall
package model

import "strings"

// ColumnType represents the SQL column type
type ColumnType int

const (
	// ColumnTypeText represents TEXT column type
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
)

const (
	// sqlTypeText is the SQL TEXT type string
	sqlTypeText = "TEXT"
	// sqlTypeInteger is the SQL INTEGER type string
	sqlTypeInteger = "INTEGER"
)

// indexPrefix is prepended to a column name to build its index name
const indexPrefix = "idx_"

// String returns the SQL column type string
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeInteger:
		return sqlTypeInteger
	default:
		return sqlTypeText
	}
}

// ColumnDef describes one column of the destination table and its position in the CSV.
type ColumnDef struct {
	// Name is the column name. It must be unique within a Manifest.
	Name string
	// Description is the upstream caption of the field. It is not persisted.
	Description string
	// Type is the declared column type.
	Type ColumnType
	// Indexed requests a secondary index on the column.
	Indexed bool
}

// IndexName returns the deterministic index name for the column.
func (c ColumnDef) IndexName() string {
	return indexPrefix + c.Name
}

// Manifest is the ordered list of column definitions. The order is the CSV column order.
type Manifest []ColumnDef

// NewManifest creates new Manifest.
func NewManifest(columns ...ColumnDef) (Manifest, error) {
	if len(columns) == 0 {
		return nil, ErrEmptyManifest
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c.Name) == "" {
			return nil, ErrEmptyColumnName
		}
		if _, ok := seen[c.Name]; ok {
			return nil, ErrDuplicateColumnName
		}
		seen[c.Name] = struct{}{}
	}
	m := make(Manifest, len(columns))
	copy(m, columns)
	return m, nil
}

// Columns returns a copy of the column definitions in order.
func (m Manifest) Columns() []ColumnDef {
	c := make([]ColumnDef, len(m))
	copy(c, m)
	return c
}

// Len returns the number of columns.
func (m Manifest) Len() int {
	return len(m)
}

// Names returns the column names in order.
func (m Manifest) Names() []string {
	names := make([]string, len(m))
	for i, c := range m {
		names[i] = c.Name
	}
	return names
}

// Indexed returns the columns flagged for indexing, in manifest order.
func (m Manifest) Indexed() []ColumnDef {
	var indexed []ColumnDef
	for _, c := range m {
		if c.Indexed {
			indexed = append(indexed, c)
		}
	}
	return indexed
}

// RawRow is one parsed CSV row, one field per column.
type RawRow []string

// NewRawRow create new RawRow.
func NewRawRow(r []string) RawRow {
	return RawRow(r)
}

// Equal compare RawRow.
func (r RawRow) Equal(r2 RawRow) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// Record maps column names to field values.
type Record map[string]string

// Values returns the record values in manifest order.
// A column missing from the record yields nil, which is stored as NULL.
func (r Record) Values(m Manifest) []any {
	values := make([]any, len(m))
	for i, c := range m {
		if v, ok := r[c.Name]; ok {
			values[i] = v
		}
	}
	return values
}
