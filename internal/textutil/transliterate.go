// Package textutil provides best-effort ASCII transliteration for
// rendered file paths.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldReplacer handles letters that canonical decomposition cannot reduce
// to an ASCII base character.
var foldReplacer = strings.NewReplacer(
	"ß", "ss",
	"ẞ", "SS",
	"æ", "ae",
	"Æ", "AE",
	"œ", "oe",
	"Œ", "OE",
	"ø", "o",
	"Ø", "O",
	"đ", "d",
	"Đ", "D",
	"ð", "d",
	"Ð", "D",
	"þ", "th",
	"Þ", "Th",
	"ł", "l",
	"Ł", "L",
	"ı", "i",
	"ĸ", "k",
	"ŋ", "ng",
	"Ŋ", "NG",
)

// decomposer strips combining marks after canonical decomposition, so
// "é" becomes "e" and "ö" becomes "o".
var decomposer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Transliterate maps accented and special letters to ASCII approximations.
// Characters with no reasonable ASCII form are passed through unchanged;
// callers that require pure ASCII must filter the result themselves.
//
// Example:
//
//	Transliterate("Motörhead")    // "Motorhead"
//	Transliterate("Björk - Jóga") // "Bjork - Joga"
func Transliterate(text string) string {
	text = foldReplacer.Replace(text)
	out, _, err := transform.String(decomposer, text)
	if err != nil {
		return text
	}
	return out
}
