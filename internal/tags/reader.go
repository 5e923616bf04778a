package tags

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tunesort/tunesort/internal/model"
)

// ErrUnsupported is returned for file types no reader understands.
var ErrUnsupported = errors.New("tags: unsupported file type")

// Reader extracts a Song from one audio file format.
type Reader interface {
	ReadSong(path string) (*model.Song, error)
}

// For returns the reader for a file, chosen by extension.
func For(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return &MP3Reader{}, nil
	case ".flac":
		return &FLACReader{}, nil
	case ".m4a":
		return &M4AReader{}, nil
	default:
		return nil, ErrUnsupported
	}
}

// Read extracts a Song from path using the reader its extension selects.
func Read(path string) (*model.Song, error) {
	reader, err := For(path)
	if err != nil {
		return nil, err
	}
	return reader.ReadSong(path)
}

// Supported reports whether path has a readable audio extension.
func Supported(path string) bool {
	_, err := For(path)
	return err == nil
}

// parsePosition splits "3/12"-style position tags into the position and
// total. Either part may be missing.
func parsePosition(s string) (pos, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		pos, _ = strconv.Atoi(strings.TrimSpace(s[:i]))
		total, _ = strconv.Atoi(strings.TrimSpace(s[i+1:]))
		return pos, total
	}
	pos, _ = strconv.Atoi(s)
	return pos, 0
}

// parseYear extracts the leading year from a date-ish tag value like
// "1997", "1997-05-21" or "1997/05/21".
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if len(s) > 4 {
		s = s[:4]
	}
	year, _ := strconv.Atoi(s)
	return year
}
