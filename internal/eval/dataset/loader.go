package dataset

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// Loader handles loading an image collection from a directory
type Loader struct {
	dir string
}

// NewLoader creates a new image loader
func NewLoader(dir string) *Loader {
	return &Loader{
		dir: dir,
	}
}

// Load decodes every supported image in the directory in lexicographic
// filename order. Files that fail to decode are logged and skipped.
func (l *Loader) Load(name string) (*Group, error) {
	files, err := ListFiles(l.dir, ImageExtensions)
	if err != nil {
		return nil, err
	}

	slog.Debug("Found image files", "dir", l.dir, "count", len(files))

	group := &Group{Name: name, Records: make([]ImageRecord, 0, len(files))}
	for _, path := range files {
		filename := filepath.Base(path)

		img, err := imaging.Open(path)
		if err != nil {
			slog.Warn("Error loading image, skipping", "filename", filename, "error", err)
			continue
		}

		group.Records = append(group.Records, ImageRecord{
			Filename: filename,
			Image:    toRGB(img),
		})
	}

	return group, nil
}

// ListFiles returns the regular files in dir whose lower-cased extension is
// one of exts, sorted by name.
func ListFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !slices.Contains(exts, ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}

// toRGB drops the alpha channel, leaving a fully opaque copy of img.
func toRGB(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}
