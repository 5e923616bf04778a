package organize

import (
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tunesort/tunesort/internal/tags"
)

// Scanner finds audio files under a library root.
//
// Files are matched against include and exclude glob patterns relative
// to the root, using ** for recursive matching. An empty include list
// matches everything; excludes always win. Files whose extension no
// tag reader understands are skipped regardless of the globs.
type Scanner struct {
	include []string
	exclude []string
}

// NewScanner creates a Scanner with the given glob patterns.
func NewScanner(include, exclude []string) *Scanner {
	return &Scanner{include: include, exclude: exclude}
}

// Scan walks root and returns the absolute paths of all matching audio
// files, in walk order.
func (s *Scanner) Scan(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if !s.matchesInclude(rel) || s.matchesExclude(rel) {
			return nil
		}
		if !tags.Supported(path) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func (s *Scanner) matchesInclude(relPath string) bool {
	if len(s.include) == 0 {
		return true
	}
	p := filepath.ToSlash(relPath)
	for _, pattern := range s.include {
		if ok, _ := doublestar.PathMatch(pattern, p); ok {
			return true
		}
	}
	return false
}

func (s *Scanner) matchesExclude(relPath string) bool {
	if len(s.exclude) == 0 {
		return false
	}
	p := filepath.ToSlash(relPath)
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.PathMatch(pattern, p); ok {
			return true
		}
	}
	return false
}
