package output

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// WriteFile creates path by running fn against a buffered temp file in the
// same directory and renaming it into place. An existing file at path is
// replaced; on failure path is left untouched and the temp file removed.
func WriteFile(path string, fn func(w io.Writer) error) error {
	if err := writeFile(path, fn); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func writeFile(path string, fn func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	fail := func(err error) error {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := f.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// os.Rename fails on Windows when the target exists.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
