package format

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tunesort/tunesort/internal/model"
)

// leadingArticle strips "the " from the front of an artist name when
// deriving %artistinitial, so The Beatles files under B.
var leadingArticle = regexp.MustCompile(`(?i)^the\s+`)

// resolveTag maps a placeholder name to its string value for song.
//
// Unknown names resolve to the empty string without error. Numeric fields
// are stringified in base 10, with the sentinel values "0" and "-1"
// suppressed to empty (they mean "unset" in the tag data). The result has
// path separators removed and surrounding whitespace trimmed; with
// RemoveProblematic set, dots are removed as well.
func resolveTag(tag string, song *model.Song, opts Options) string {
	var value string

	switch tag {
	case "title":
		value = song.Title
	case "album":
		value = song.Album
	case "artist":
		value = song.Artist
	case "composer":
		value = song.Composer
	case "performer":
		value = song.Performer
	case "grouping":
		value = song.Grouping
	case "lyrics":
		value = song.Lyrics
	case "genre":
		value = song.Genre
	case "comment":
		value = song.Comment
	case "year":
		value = strconv.Itoa(song.Year)
	case "originalyear":
		value = strconv.Itoa(song.EffectiveOriginalYear())
	case "track":
		value = strconv.Itoa(song.Track)
	case "disc":
		value = strconv.Itoa(song.Disc)
	case "length":
		value = strconv.FormatInt(song.LengthSeconds(), 10)
	case "bitrate":
		value = strconv.Itoa(song.Bitrate)
	case "samplerate":
		value = strconv.Itoa(song.Samplerate)
	case "bitdepth":
		value = strconv.Itoa(song.Bitdepth)
	case "extension":
		value = song.Extension()
	case "artistinitial":
		value = strings.TrimSpace(song.EffectiveAlbumArtist())
		if value != "" {
			value = leadingArticle.ReplaceAllString(value, "")
		}
		if value != "" {
			r, _ := utf8.DecodeRuneInString(value)
			value = string(unicode.ToUpper(r))
		}
	case "albumartist":
		if song.Compilation {
			value = "Various Artists"
		} else {
			value = song.EffectiveAlbumArtist()
		}
	}

	// Numeric defaults mean the field was never set.
	if value == "0" || value == "-1" {
		value = ""
	}

	if tag == "track" && len(value) == 1 {
		value = "0" + value
	}

	value = removeChars(value, invalidDirCharacters)
	if opts.RemoveProblematic {
		value = strings.ReplaceAll(value, ".", "")
	}
	return strings.TrimSpace(value)
}
