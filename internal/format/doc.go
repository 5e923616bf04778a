// Package format renders sanitized file paths for songs from user-authored
// filename templates.
//
// A template mixes literal text, %tag placeholders, and {...} optional
// sections:
//
//	%albumartist/%album/{%disc-}%track %title
//
// Placeholders are substituted with values from the song's metadata. An
// optional section collapses to nothing when any placeholder directly
// inside it resolves to the empty string, so separators tied to a missing
// field vanish with it:
//
//	f := format.New("%artist - {%composer - }%title")
//	res, err := f.Render(song, "", format.Options{ReplaceSpaces: true})
//	// composer unset: "A_-_T", never "A_-__-_T"
//
// Rendering always yields either a usable path or the sentinel error
// ErrUnusablePath; malformed braces and unknown placeholder names are not
// errors (braces stay literal, unknown tags resolve empty).
//
// The exported BlockPattern/TagPattern constants and the KnownTags/
// UniqueTags sets are shared with the template editor and its syntax
// validator; the validator itself lives outside this package.
package format
