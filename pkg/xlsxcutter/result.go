package xlsxcutter

import (
	"encoding/json"
	"fmt"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
)

// Result lists the files a call produced and the outputs it could not.
type Result struct {
	// Written holds absolute paths in the order they were completed.
	Written []string `json:"written"`
	// Failures holds one entry per chunk and format that failed.
	Failures []Failure `json:"failures,omitempty"`
}

// Failure records one output that could not be written.
type Failure struct {
	Chunk  int
	Format output.Format
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("chunk %d (%s): %v", f.Chunk, f.Format, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

func (f Failure) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Chunk  int           `json:"chunk"`
		Format output.Format `json:"format"`
		Error  string        `json:"error"`
	}{f.Chunk, f.Format, msg})
}

// OK reports whether every requested output was written.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}
