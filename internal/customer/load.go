package customer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoInputs indicates that neither an input file nor an input directory
// produced any record files.
var ErrNoInputs = errors.New("customer: no input files provided")

// LoadFile reads and parses one customer record file. A missing or
// unreadable file is a fatal input error for that record.
func LoadFile(path string, logger *slog.Logger) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("customer: read input %q: %w", path, err)
	}
	rec, err := Parse(data, logger)
	if err != nil {
		return nil, fmt.Errorf("customer: input %q: %w", path, err)
	}
	return rec, nil
}

// ResolveInputs expands a single input file and/or a directory of *.json
// files into an ordered list of record paths. Directory entries are
// sorted by name so batch runs are reproducible.
func ResolveInputs(inputFile, inputDir string) ([]string, error) {
	var paths []string
	if inputFile != "" {
		paths = append(paths, inputFile)
	}
	if inputDir != "" {
		matches, err := filepath.Glob(filepath.Join(inputDir, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("customer: scan input dir %q: %w", inputDir, err)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, ErrNoInputs
	}
	return paths, nil
}
