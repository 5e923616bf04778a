package model

import (
	"path/filepath"
	"strings"
)

// Song is a read-only snapshot of one track's metadata, as read from the
// file's own tags. It is the record the path renderer resolves placeholder
// values from; nothing in this module mutates a Song after it is built.
//
// Numeric fields use 0 (or -1) to mean "unset"; the renderer suppresses
// those sentinel values when substituting placeholders.
//
// Example:
//
//	song := &model.Song{
//	    Title:    "Paranoid Android",
//	    Artist:   "Radiohead",
//	    Album:    "OK Computer",
//	    Track:    2,
//	    FilePath: "/library/incoming/02 - paranoid android.mp3",
//	}
type Song struct {
	// Text fields.
	Title       string
	Album       string
	Artist      string
	AlbumArtist string
	Composer    string
	Performer   string
	Grouping    string
	Lyrics      string
	Genre       string
	Comment     string

	// Compilation marks various-artists albums.
	Compilation bool

	// Numeric fields. Zero means unknown.
	Year         int
	OriginalYear int
	Track        int
	Disc         int
	Bitrate      int
	Samplerate   int
	Bitdepth     int

	// LengthNanosec is the track duration in nanoseconds.
	LengthNanosec int64

	// FilePath is where the file currently lives on disk.
	FilePath string

	// Art is the embedded cover art, if the file carries one.
	Art *Artwork
}

// Artwork is a cover image embedded in an audio file's tags.
type Artwork struct {
	MimeType string
	Data     []byte
}

// EffectiveAlbumArtist returns the album artist, falling back to the track
// artist when no album artist is tagged.
func (s *Song) EffectiveAlbumArtist() string {
	if s.AlbumArtist == "" {
		return s.Artist
	}
	return s.AlbumArtist
}

// EffectiveOriginalYear returns the original release year, falling back to
// the release year when the original year is unknown.
func (s *Song) EffectiveOriginalYear() int {
	if s.OriginalYear <= 0 {
		return s.Year
	}
	return s.OriginalYear
}

// LengthSeconds returns the duration in whole seconds, truncated.
func (s *Song) LengthSeconds() int64 {
	return s.LengthNanosec / 1e9
}

// BaseFilename returns the file's own name (with extension), used as the
// fallback when a template renders an empty basename.
func (s *Song) BaseFilename() string {
	if s.FilePath == "" {
		return ""
	}
	return filepath.Base(s.FilePath)
}

// Extension returns the source file's extension without the leading dot.
// Empty when the file has no extension.
func (s *Song) Extension() string {
	return strings.TrimPrefix(filepath.Ext(s.FilePath), ".")
}

// HasArt returns true if the file carries embedded cover art.
func (s *Song) HasArt() bool {
	return s.Art != nil && len(s.Art.Data) > 0
}
