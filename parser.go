package utfall

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/nao1215/utfall/domain/model"
)

// utf8BOM is the byte order mark some producers put in front of UTF-8 text
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RowReader reads RawRows from delimited text one at a time.
// It never holds more than the current row in memory.
// A RowReader is not restartable and not safe for concurrent use.
type RowReader struct {
	csv    *csv.Reader
	rows   int
	closer func() error
}

// NewRowReader creates a RowReader over r using delimiter as the field separator.
// Fields follow standard CSV quoting rules. A leading UTF-8 BOM is skipped.
func NewRowReader(r io.Reader, delimiter rune) *RowReader {
	br := bufio.NewReader(r)
	skipBOM(br)

	csvReader := csv.NewReader(br)
	csvReader.Comma = delimiter
	// Row length is checked against the manifest by the mapper
	csvReader.FieldsPerRecord = -1

	return &RowReader{
		csv:    csvReader,
		closer: func() error { return nil },
	}
}

// OpenRowReader opens the file at path, decompressing it according to its
// extension, and returns a RowReader over it. The caller must Close it.
func OpenRowReader(path string, delimiter rune) (*RowReader, error) {
	reader, cleanup, err := openDecompressed(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	rr := NewRowReader(reader, delimiter)
	rr.closer = cleanup
	return rr, nil
}

// skipBOM discards a leading UTF-8 BOM.
func skipBOM(br *bufio.Reader) {
	b, err := br.Peek(len(utf8BOM))
	if err != nil {
		return
	}
	if bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
}

// Read returns the next row. It returns io.EOF when the input is exhausted and
// *ParseError for malformed input. Reading after an error is undefined.
func (r *RowReader) Read() (model.RawRow, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		line := 0
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			line = csvErr.StartLine
		}
		return nil, &ParseError{Line: line, Err: err}
	}
	r.rows++
	return model.NewRawRow(record), nil
}

// Rows returns an iterator over the remaining rows. Iteration stops after the
// first error, which is yielded with a nil row.
func (r *RowReader) Rows() iter.Seq2[model.RawRow, error] {
	return func(yield func(model.RawRow, error) bool) {
		for {
			row, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// Line returns the input line on which the most recently read row started.
func (r *RowReader) Line() int {
	if r.rows == 0 {
		return 0
	}
	line, _ := r.csv.FieldPos(0)
	return line
}

// RowsRead returns the number of rows read so far.
func (r *RowReader) RowsRead() int {
	return r.rows
}

// Close releases the underlying file, if any.
func (r *RowReader) Close() error {
	return r.closer()
}
