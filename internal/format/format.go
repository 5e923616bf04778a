package format

import (
	"errors"
	"strings"

	"github.com/tunesort/tunesort/internal/model"
)

// Pattern strings shared with the template editor and syntax validator.
const (
	// BlockPattern matches one optional section and captures its body.
	BlockPattern = `\{([^{}]+)\}`

	// TagPattern matches one placeholder and captures its name. The name
	// may be empty; a bare % is an unknown (empty) tag.
	TagPattern = `%([a-zA-Z]*)`
)

// KnownTags is the fixed vocabulary of placeholder names the resolver
// understands. Names outside this set resolve to the empty string.
var KnownTags = []string{
	"title",
	"album",
	"artist",
	"artistinitial",
	"albumartist",
	"composer",
	"track",
	"disc",
	"year",
	"originalyear",
	"genre",
	"comment",
	"length",
	"bitrate",
	"samplerate",
	"bitdepth",
	"extension",
	"performer",
	"grouping",
	"lyrics",
}

// UniqueTags are the placeholders whose non-empty presence makes a rendered
// filename self-disambiguating, so the caller can skip its own numbering.
var UniqueTags = []string{"title", "track"}

// Character sets applied by the sanitizer stages.
const (
	problematicCharacters   = `:?*"<>|`
	invalidDirCharacters    = `/\`
	validFatCharacters      = "!#$%&'()-@^`_{}~/. "
	invalidPrefixCharacters = "."
)

// Options are the per-render sanitization switches. The zero value applies
// no optional cleanup and keeps spaces.
type Options struct {
	// RemoveProblematic strips characters that tend to upset shells and
	// sync tools (:?*"<>|), plus dots inside tag values.
	RemoveProblematic bool

	// RemoveNonFAT strips characters FAT-family file systems reject,
	// transliterating non-ASCII letters first.
	RemoveNonFAT bool

	// RemoveNonASCII drops characters outside ASCII, falling back to each
	// character's canonical decomposition base where one exists.
	RemoveNonASCII bool

	// AllowExtendedASCII raises the RemoveNonASCII threshold to the
	// extended (8-bit) range and skips transliteration.
	AllowExtendedASCII bool

	// ReplaceSpaces substitutes every whitespace character with "_".
	ReplaceSpaces bool
}

// Result is a successfully rendered path.
type Result struct {
	// Path is the sanitized file path, relative unless the template
	// produced directories.
	Path string

	// IsUnique reports whether a unique tag (title or track) contributed a
	// non-empty value anywhere in the template.
	IsUnique bool
}

// ErrUnusablePath is returned when a template renders to nothing usable:
// an empty string, or a path whose directory portion is empty.
var ErrUnusablePath = errors.New("format: template produced no usable path")

// Format is an immutable filename template. The zero value renders the
// song's own filename.
type Format struct {
	template string
}

// New builds a Format from a template string. Backslashes are normalized
// to forward slashes so Windows-style templates keep working.
func New(template string) Format {
	return Format{template: strings.ReplaceAll(template, `\`, "/")}
}

// Template returns the normalized template string.
func (f Format) Template() string {
	return f.template
}

// Render expands the template for song and sanitizes the outcome.
//
// extension overrides the rendered file extension; pass "" to keep the
// extension the template or the source file provides. opts is treated as
// an immutable snapshot for the duration of the call.
//
// Render never mutates song and holds no state between calls, so a single
// Format may be used from multiple goroutines concurrently.
func (f Format) Render(song *model.Song, extension string, opts Options) (Result, error) {
	ev := &evaluator{song: song, opts: opts}
	filePath := ev.run(f.template)

	if filePath == "" {
		filePath = song.BaseFilename()
	}

	if completeBaseName(filePath) == "" {
		// The template produced directories but no filename. Keep the
		// directory prefix and fall back to the song's own name.
		dir := dirPart(filePath)
		filePath = ""
		if dir != "" {
			filePath = dir
			if !strings.HasSuffix(dir, "/") {
				filePath += "/"
			}
		}
		filePath += song.BaseFilename()
	}

	if filePath == "" || (strings.Contains(filePath, "/") && parentPart(filePath) == "") {
		return Result{}, ErrUnusablePath
	}

	return Result{
		Path:     sanitize(filePath, song, extension, opts),
		IsUnique: ev.unique,
	}, nil
}
