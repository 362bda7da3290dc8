package utfall

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/utfall/domain/model"
)

func threeColumnManifest() model.Manifest {
	return model.Manifest{
		{Name: "jiscode", Type: model.ColumnTypeText},
		{Name: "zip5", Type: model.ColumnTypeText, Indexed: true},
		{Name: "pref", Type: model.ColumnTypeText, Indexed: true},
	}
}

func TestToRecord(t *testing.T) {
	t.Parallel()

	t.Run("fields are named by position", func(t *testing.T) {
		t.Parallel()

		record, err := ToRecord(model.NewRawRow([]string{"01101", "0600000", "北海道"}), threeColumnManifest())
		require.NoError(t, err)
		assert.Equal(t, model.Record{"jiscode": "01101", "zip5": "0600000", "pref": "北海道"}, record)
	})

	t.Run("empty fields are kept", func(t *testing.T) {
		t.Parallel()

		record, err := ToRecord(model.NewRawRow([]string{"", "", ""}), threeColumnManifest())
		require.NoError(t, err)
		assert.Len(t, record, 3)
		assert.Equal(t, "", record["zip5"])
	})

	t.Run("too many fields", func(t *testing.T) {
		t.Parallel()

		_, err := ToRecord(model.NewRawRow([]string{"a", "b", "c", "d"}), threeColumnManifest())
		var mismatch *SchemaMismatchError
		require.True(t, errors.As(err, &mismatch), "want *SchemaMismatchError, got %v", err)
		assert.Equal(t, 3, mismatch.Want)
		assert.Equal(t, 4, mismatch.Got)
	})

	t.Run("too few fields", func(t *testing.T) {
		t.Parallel()

		_, err := ToRecord(model.NewRawRow([]string{"a"}), threeColumnManifest())
		var mismatch *SchemaMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 1, mismatch.Got)
	})
}
