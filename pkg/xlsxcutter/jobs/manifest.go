// Package jobs runs batches of split and build operations described in a
// YAML manifest.
package jobs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest indicates a manifest that cannot be parsed or fails
// validation.
var ErrInvalidManifest = errors.New("invalid job manifest")

// Kind selects the operation a job runs.
type Kind string

const (
	// KindSplit runs xlsxcutter.Split.
	KindSplit Kind = "split"
	// KindBuild runs xlsxcutter.Rebuild.
	KindBuild Kind = "build"
)

// Manifest is the top-level document of a jobs file.
type Manifest struct {
	Jobs []Job `yaml:"jobs" validate:"min=1,unique=Name,dive"`
}

// Job describes one split or build operation.
type Job struct {
	Name   string `yaml:"name" validate:"required"`
	Kind   Kind   `yaml:"kind" validate:"oneof=split build"`
	Source string `yaml:"source" validate:"required"`
	// Out is the output directory of a split job or the workbook of a
	// build job.
	Out string `yaml:"out" validate:"required"`
	// Rows is the chunk size of a split job or the sheet size of a build
	// job; zero means the sheet row ceiling for build jobs.
	Rows int `yaml:"rows" validate:"required_if=Kind split,gte=0"`

	Sheet     string   `yaml:"sheet" validate:"required_if=Kind split"`
	Start     string   `yaml:"start"`
	End       string   `yaml:"end"`
	Formats   []string `yaml:"formats" validate:"required_if=Kind split,dive,required"`
	NameBase  string   `yaml:"name_base"`
	PrintArea bool     `yaml:"print_area"`

	Comma   string `yaml:"comma" validate:"omitempty,len=1"`
	Charset string `yaml:"charset"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates the manifest at path. Relative source and output
// paths are resolved against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.resolvePaths(filepath.Dir(path))
	return m, nil
}

// Parse decodes and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidManifest, describe(err))
	}
	return &m, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag())
	}
	return strings.Join(msgs, "; ")
}

func (m *Manifest) resolvePaths(dir string) {
	for i := range m.Jobs {
		m.Jobs[i].Source = resolvePath(dir, m.Jobs[i].Source)
		m.Jobs[i].Out = resolvePath(dir, m.Jobs[i].Out)
	}
}

func resolvePath(dir, p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// SplitRequest converts a split job into its request.
func (j Job) SplitRequest() (xlsxcutter.SplitRequest, error) {
	formats := make([]output.Format, 0, len(j.Formats))
	for _, name := range j.Formats {
		f, err := output.ParseFormat(name)
		if err != nil {
			return xlsxcutter.SplitRequest{}, err
		}
		formats = append(formats, f)
	}
	start := j.Start
	if start == "" {
		start = "A1"
	}
	return xlsxcutter.SplitRequest{
		Source:       j.Source,
		Sheet:        j.Sheet,
		Start:        start,
		End:          j.End,
		RowsPerChunk: j.Rows,
		OutputDir:    j.Out,
		Formats:      formats,
		BaseName:     j.NameBase,
		UsePrintArea: j.PrintArea,
	}, nil
}

// RebuildRequest converts a build job into its request.
func (j Job) RebuildRequest() xlsxcutter.RebuildRequest {
	rows := j.Rows
	if rows == 0 {
		rows = xlsxcutter.MaxSheetRows
	}
	var comma rune
	if j.Comma != "" {
		comma, _ = utf8.DecodeRuneInString(j.Comma)
	}
	return xlsxcutter.RebuildRequest{
		Source:          j.Source,
		MaxRowsPerSheet: rows,
		Output:          j.Out,
		Comma:           comma,
		Charset:         j.Charset,
	}
}
