// Package chunk partitions the data rows of a table into fixed-size groups.
package chunk

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
)

// ErrInvalidChunkSize indicates a chunk size below one row.
var ErrInvalidChunkSize = errors.New("invalid chunk size")

// preallocLimit caps the initial capacity of a chunk's row slice so a large
// maximum does not allocate memory for rows that never arrive.
const preallocLimit = 4096

// ValidateSize checks that maxRows is a usable chunk size.
func ValidateSize(maxRows int) error {
	if maxRows < 1 {
		return fmt.Errorf("%w: rows per chunk must be greater than zero, got %d", ErrInvalidChunkSize, maxRows)
	}
	return nil
}

// Iterator walks a table and yields consecutive chunks of at most maxRows rows.
type Iterator struct {
	header  []string
	rows    models.RowIterator
	maxRows int
	index   int
	current models.Chunk
	err     error
	done    bool
}

// New returns an Iterator over t. The table's rows are consumed as chunks are
// requested; the caller still owns t and must close it.
func New(t *models.Table, maxRows int) (*Iterator, error) {
	if err := ValidateSize(maxRows); err != nil {
		return nil, err
	}
	it := &Iterator{maxRows: maxRows}
	if t != nil {
		it.header = t.Header
		it.rows = t.Rows
	}
	if it.rows == nil {
		it.done = true
	}
	return it, nil
}

// Next advances to the next chunk. It returns false when the rows are
// exhausted or reading failed; check Err afterwards.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	rows := make([]models.Row, 0, min(it.maxRows, preallocLimit))
	for len(rows) < it.maxRows && it.rows.Next() {
		rows = append(rows, it.rows.Row())
	}
	if len(rows) < it.maxRows {
		it.done = true
		if err := it.rows.Err(); err != nil {
			it.err = err
			return false
		}
	}
	if len(rows) == 0 {
		it.done = true
		return false
	}
	it.index++
	it.current = models.Chunk{Index: it.index, Header: it.header, Rows: rows}
	return true
}

// Chunk returns the chunk produced by the last call to Next.
func (it *Iterator) Chunk() models.Chunk {
	return it.current
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Collect drains t into a slice of chunks.
func Collect(t *models.Table, maxRows int) ([]models.Chunk, error) {
	it, err := New(t, maxRows)
	if err != nil {
		return nil, err
	}
	var chunks []models.Chunk
	for it.Next() {
		chunks = append(chunks, it.Chunk())
	}
	return chunks, it.Err()
}
