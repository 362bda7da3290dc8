package utfall

import "github.com/nao1215/utfall/domain/model"

// ToRecord names the fields of row after the manifest columns at the same position.
// The row must have exactly one field per column; otherwise *SchemaMismatchError is
// returned instead of silently dropping or leaving out fields.
func ToRecord(row model.RawRow, m model.Manifest) (model.Record, error) {
	if len(row) != len(m) {
		return nil, &SchemaMismatchError{Want: len(m), Got: len(row)}
	}
	record := make(model.Record, len(m))
	for i, c := range m {
		record[c.Name] = row[i]
	}
	return record, nil
}
