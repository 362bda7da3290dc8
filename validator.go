package utfall

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/utfall/domain/model"
)

// MaxColumnCount is the largest manifest SQLite accepts with its default limits
const MaxColumnCount = 2000

// sqliteReservedPrefix starts the names SQLite keeps for internal objects
const sqliteReservedPrefix = "sqlite_"

var (
	// ErrInvalidIdentifier is returned when a table or column name cannot be used
	ErrInvalidIdentifier = errors.New("utfall: invalid SQL identifier")

	// ErrTooManyColumns is returned when a manifest has more columns than SQLite allows
	ErrTooManyColumns = errors.New("utfall: too many columns")
)

// schemaValidator handles validation of the destination schema before any statement runs
type schemaValidator struct{}

// newSchemaValidator creates a new schemaValidator instance
func newSchemaValidator() *schemaValidator {
	return &schemaValidator{}
}

// validateIdentifier checks a table, column or index name.
// Names are quoted when used, so only what quoting cannot fix is rejected.
func (v *schemaValidator) validateIdentifier(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidIdentifier)
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("%w: %q contains a null byte", ErrInvalidIdentifier, name)
	}
	if strings.HasPrefix(strings.ToLower(name), sqliteReservedPrefix) {
		return fmt.Errorf("%w: %q is reserved for internal use", ErrInvalidIdentifier, name)
	}
	return nil
}

// validateSchema checks that table and m describe a table SQLite can create.
// SQLite compares identifiers case-insensitively, so duplicates are detected that way.
func (v *schemaValidator) validateSchema(table string, m model.Manifest) error {
	if err := v.validateIdentifier(table); err != nil {
		return fmt.Errorf("invalid table name: %w", err)
	}
	if m.Len() == 0 {
		return model.ErrEmptyManifest
	}
	if m.Len() > MaxColumnCount {
		return fmt.Errorf("%w: %d columns, at most %d", ErrTooManyColumns, m.Len(), MaxColumnCount)
	}

	columns := make(map[string]struct{}, m.Len())
	objects := map[string]struct{}{strings.ToLower(table): {}}
	for _, c := range m {
		if err := v.validateIdentifier(c.Name); err != nil {
			return fmt.Errorf("invalid column name: %w", err)
		}
		key := strings.ToLower(c.Name)
		if _, ok := columns[key]; ok {
			return fmt.Errorf("%w: %s", model.ErrDuplicateColumnName, c.Name)
		}
		columns[key] = struct{}{}

		if !c.Indexed {
			continue
		}
		// Tables and indexes share one namespace
		index := strings.ToLower(c.IndexName())
		if _, ok := objects[index]; ok {
			return fmt.Errorf("%w: index %s collides with an existing name", ErrInvalidIdentifier, c.IndexName())
		}
		objects[index] = struct{}{}
	}
	return nil
}
