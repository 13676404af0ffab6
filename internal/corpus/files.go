// Package corpus locates Revo article files and keeps a local checkout of
// the revo-fonto repository up to date.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNoArticles is returned when a directory holds no *.xml files.
var ErrNoArticles = errors.New("no article files")

// ListArticles returns path itself when it is a file, or the *.xml files
// directly in it when it is a directory, sorted by name.
func ListArticles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("articles: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := filepath.Glob(filepath.Join(path, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("articles: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoArticles, path)
	}
	slices.Sort(files)
	return files, nil
}

// Stem returns the file name of path without directory and extension,
// which is how articles are identified in the generated indexes.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
