package output

import (
	"io"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
)

// ChunkWriter serialises one chunk in a single format.
type ChunkWriter interface {
	Format() Format
	// WriteChunk writes c to w; sheet names the worksheet for formats that
	// have one.
	WriteChunk(w io.Writer, sheet string, c models.Chunk) error
}

// Registry maps formats to the writers that serve them.
type Registry struct {
	writers map[Format]ChunkWriter
}

// NewRegistry returns a registry holding writers.
func NewRegistry(writers ...ChunkWriter) *Registry {
	r := &Registry{writers: make(map[Format]ChunkWriter, len(writers))}
	for _, w := range writers {
		r.Register(w)
	}
	return r
}

// DefaultRegistry returns a registry serving every format in AllFormats.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewWorkbookWriter(FormatXLSX),
		CSVWriter{},
		JSONWriter{},
		NewWorkbookWriter(FormatODS),
	)
}

// Register adds w, replacing any writer already registered for its format.
func (r *Registry) Register(w ChunkWriter) {
	r.writers[w.Format()] = w
}

// Supported reports whether a writer is registered for f.
func (r *Registry) Supported(f Format) bool {
	_, ok := r.writers[f]
	return ok
}

// Lookup returns the writer for f.
func (r *Registry) Lookup(f Format) (ChunkWriter, error) {
	w, ok := r.writers[f]
	if !ok {
		return nil, &UnsupportedFormatError{Format: f}
	}
	return w, nil
}
