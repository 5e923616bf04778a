package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tunesort/tunesort/internal/model"
	"github.com/tunesort/tunesort/internal/textutil"
)

// sanitize runs the ordered cleanup stages over a fully rendered path.
// Each optional stage is gated by opts; the stage order is fixed and the
// whole pipeline is idempotent. extension overrides the file extension
// when non-empty.
func sanitize(filePath string, song *model.Song, extension string, opts Options) string {
	if opts.RemoveProblematic {
		filePath = removeChars(filePath, problematicCharacters)
	}
	if opts.RemoveNonFAT || (opts.RemoveNonASCII && !opts.AllowExtendedASCII) {
		filePath = textutil.Transliterate(filePath)
	}
	if opts.RemoveNonFAT {
		filePath = removeInvalidFatChars(filePath)
	}
	if opts.RemoveNonASCII {
		filePath = stripNonASCII(filePath, opts.AllowExtendedASCII)
	}

	filePath = simplifyWhitespace(filePath)

	// Extension fixup: an explicit extension wins, then whatever suffix
	// the template rendered, then the source file's own.
	if extension == "" {
		extension = suffixPart(filePath)
		if extension == "" {
			extension = song.Extension()
		}
	}
	dir := dirPart(filePath)
	filePath = completeBaseName(filePath)
	if dir != "" && dir != "." {
		filePath = dir + "/" + filePath
	}

	filePath = trimSegmentPrefixes(filePath)

	if opts.ReplaceSpaces {
		filePath = replaceWhitespace(filePath, '_')
	}

	if extension != "" {
		filePath += "." + extension
	}
	return filePath
}

// removeChars drops every rune of set from s.
func removeChars(s, set string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(set, r) {
			return -1
		}
		return r
	}, s)
}

func isFatRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(validFatCharacters, r)
}

// removeInvalidFatChars drops every rune a FAT file system rejects.
func removeInvalidFatChars(s string) string {
	return strings.Map(func(r rune) rune {
		if isFatRune(r) {
			return r
		}
		return -1
	}, s)
}

// stripNonASCII keeps runes below the ASCII limit (extended raises it to
// the 8-bit range). A rune at or above the limit is replaced by the base
// character of its canonical decomposition when that base fits below the
// limit, and dropped otherwise.
func stripNonASCII(s string, allowExtended bool) string {
	limit := rune(128)
	if allowExtended {
		limit = 255
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < limit {
			b.WriteRune(r)
			continue
		}
		d := norm.NFD.String(string(r))
		base, _ := utf8.DecodeRuneInString(d)
		if base != r && base < limit {
			b.WriteRune(base)
		}
	}
	return b.String()
}

// simplifyWhitespace collapses every whitespace run (including tabs and
// newlines) to a single space and trims the ends.
func simplifyWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// trimSegmentPrefixes strips one leading invalid-prefix character (a dot)
// from each path segment, then trims the segment.
func trimSegmentPrefixes(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		if part != "" && strings.ContainsRune(invalidPrefixCharacters, rune(part[0])) {
			part = part[1:]
		}
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, "/")
}

func replaceWhitespace(s string, repl rune) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return repl
		}
		return r
	}, s)
}

// dirPart returns the directory portion of a slash-separated path: "." for
// a bare filename, everything before the last slash otherwise.
func dirPart(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		if p == "" {
			return ""
		}
		return "."
	}
	if i == 0 {
		return "/"
	}
	return p[:i]
}

// parentPart returns everything before the last slash, without the
// bare-filename special case. "/x" yields "".
func parentPart(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}

// filePart returns the final path segment.
func filePart(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// suffixPart returns the extension of the final segment, without the dot.
func suffixPart(p string) string {
	name := filePart(p)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return ""
}

// completeBaseName returns the final segment with its last suffix removed.
// A segment that is all extension ("." + suffix) yields the empty string.
func completeBaseName(p string) string {
	name := filePart(p)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}
