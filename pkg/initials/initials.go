// Package initials turns a free-form text into the few characters displayed
// on a letter avatar.
package initials

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder is displayed when the filters have removed every character.
const Placeholder = "•"

// Flags are the normalization policies applied to the text.
type Flags struct {
	// UpperCase converts the result to upper case, as the last step.
	UpperCase bool
	// FirstCharOnly keeps only the first valid character (of each part for a
	// name pair). DigitOnly and AlphaNumOnly are ignored without it.
	FirstCharOnly bool
	// DigitOnly removes every character that is not a decimal digit.
	DigitOnly bool
	// AlphaNumOnly removes every character that is not a letter or a number.
	AlphaNumOnly bool
}

// Pair is a text given as two parts, like a first name and a last name.
type Pair struct {
	First     string
	Last      string
	Separator string
}

// String returns the combined text, as typed.
func (p Pair) String() string {
	return p.First + p.Separator + p.Last
}

var upper = cases.Upper(language.Und)

// Normalize returns the text to display for the given input. When pair is
// not nil, text must be its combined form.
func Normalize(text string, pair *Pair, flags Flags) string {
	var res string
	switch {
	case pair != nil && flags.FirstCharOnly:
		res = FirstChar(pair.First, flags) + FirstChar(pair.Last, flags)
		if res == "" {
			res = Placeholder
		}
	case flags.FirstCharOnly:
		res = FirstChar(text, flags)
		if res == "" {
			res = Placeholder
		}
	default:
		res = strings.TrimSpace(text)
	}
	if flags.UpperCase {
		res = upper.String(res)
	}
	return res
}

// FirstChar returns the first valid character of the trimmed text, or an
// empty string if there is none.
//
// If the text is "You have 4 notifications" and DigitOnly is set, the result
// is "4". If the text is "<Unknown>" and AlphaNumOnly is set, the result is
// "U" and not "<".
func FirstChar(text string, flags Flags) string {
	text = strings.TrimSpace(text)
	if flags.DigitOnly {
		text = strings.Map(keep(isDigit), text)
	}
	if flags.AlphaNumOnly {
		text = strings.Map(keep(isAlphaNum), text)
	}
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return ""
	}
	return string(r)
}

func keep(pred func(rune) bool) func(rune) rune {
	return func(r rune) rune {
		if pred(r) {
			return r
		}
		return -1
	}
}

func isDigit(r rune) bool {
	return unicode.Is(unicode.Nd, r)
}

func isAlphaNum(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Nd, r)
}

// FromName returns the initials of a full name: the first letter of the
// first word and of the last word. It returns "?" if no word starts with a
// letter.
func FromName(name string) string {
	parts := strings.Fields(name)
	initials := make([]rune, 0, len(parts))
	for _, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		if size > 0 && unicode.IsLetter(r) {
			initials = append(initials, r)
		}
	}
	switch len(initials) {
	case 0:
		return "?"
	case 1:
		return string(initials)
	default:
		return string(initials[0]) + string(initials[len(initials)-1])
	}
}
