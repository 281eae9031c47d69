package predictions

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrMissingPredictions is returned when a group × prompt combination has no file.
	ErrMissingPredictions = errors.New("missing prediction files")

	// ErrInvalidLabel is returned in strict mode for values other than Yes or No.
	ErrInvalidLabel = errors.New("invalid prediction label")
)

var fileStemPattern = regexp.MustCompile(`^img_(ai|real)-prompt_(basic|detailed)$`)

// ParseFileStem maps a prediction file name (without extension) to its key.
func ParseFileStem(stem string) (Key, bool) {
	m := fileStemPattern.FindStringSubmatch(stem)
	if m == nil {
		return Key{}, false
	}
	return Key{Group: Group(m[1]), Prompt: PromptType(m[2])}, true
}

// Set holds the prediction lists loaded from a predictions directory.
type Set struct {
	lists map[Key][]Prediction
	files map[Key]string
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{
		lists: make(map[Key][]Prediction),
		files: make(map[Key]string),
	}
}

// Put stores the predictions for a key.
func (s *Set) Put(key Key, preds []Prediction) {
	s.lists[key] = preds
}

// Get returns the predictions for a key.
func (s *Set) Get(key Key) []Prediction {
	return s.lists[key]
}

// Has reports whether a list was loaded for key.
func (s *Set) Has(key Key) bool {
	_, ok := s.lists[key]
	return ok
}

// Len returns the number of loaded lists.
func (s *Set) Len() int {
	return len(s.lists)
}

// Source returns the file a list was loaded from, if any.
func (s *Set) Source(key Key) string {
	return s.files[key]
}

// Validate checks that all four combinations are present. With strict set,
// every prediction must also be Yes or No.
func (s *Set) Validate(strict bool) error {
	var missing []string
	for _, key := range AllKeys() {
		if !s.Has(key) {
			missing = append(missing, key.FileStem()+".json")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingPredictions, strings.Join(missing, ", "))
	}

	for _, key := range AllKeys() {
		for _, p := range s.lists[key] {
			if p.Prediction.Valid() {
				continue
			}
			if strict {
				return fmt.Errorf("%w: %q for %s in %s", ErrInvalidLabel, p.Prediction, p.Filename, key)
			}
			slog.Warn("Prediction is neither Yes nor No, counting as incorrect",
				"file", key.FileStem(), "filename", p.Filename, "prediction", p.Prediction)
		}
	}
	return nil
}

// LoadDir loads every conventionally named *.json file in dir.
// Files that do not follow the img_<group>-prompt_<type> convention are skipped.
func LoadDir(dir string) (*Set, error) {
	if _, err := os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("failed to read predictions directory: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list prediction files: %w", err)
	}
	sort.Strings(matches)

	set := NewSet()
	for _, path := range matches {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		key, ok := ParseFileStem(stem)
		if !ok {
			slog.Debug("Skipping prediction file with unrecognized name", "path", path)
			continue
		}

		results, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		set.lists[key] = results.Predictions
		set.files[key] = path
		slog.Debug("Loaded prediction file", "path", path, "predictions", len(results.Predictions))
	}

	return set, nil
}

// LoadFile decodes a single prediction file.
func LoadFile(path string) (*ExperimentResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prediction file %s: %w", path, err)
	}

	var results ExperimentResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse prediction file %s: %w", path, err)
	}
	if results.Predictions == nil {
		return nil, fmt.Errorf("prediction file %s has no predictions list", path)
	}

	return &results, nil
}

// SaveFile writes results as indented JSON, creating the directory if needed.
func SaveFile(results *ExperimentResults, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
