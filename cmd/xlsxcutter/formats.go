package main

import (
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
)

// formatList is a pflag.Value collecting comma-separated output formats.
// The first Set replaces the default; later ones append.
type formatList struct {
	formats []output.Format
	changed bool
}

var _ pflag.Value = (*formatList)(nil)

func newFormatList(defaults ...output.Format) *formatList {
	return &formatList{formats: defaults}
}

func (l *formatList) String() string {
	names := make([]string, len(l.formats))
	for i, f := range l.formats {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}

func (l *formatList) Set(s string) error {
	if !l.changed {
		l.formats = nil
		l.changed = true
	}
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := output.ParseFormat(name)
		if err != nil {
			return err
		}
		if !slices.Contains(l.formats, f) {
			l.formats = append(l.formats, f)
		}
	}
	return nil
}

func (l *formatList) Type() string { return "formats" }

func (l *formatList) Formats() []output.Format { return l.formats }
