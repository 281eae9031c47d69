package plots

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SavePNG renders into memory and then writes path, creating the parent
// directory. A failed render leaves any existing file untouched.
func SavePNG(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
