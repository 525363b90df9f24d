package naming

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gertd/go-pluralize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var pluralizer = sync.OnceValue(pluralize.NewClient)

// Singular returns the singular form of word, keeping its casing, e.g. "Items" becomes "Item".
func Singular(word string) string {
	if word == "" {
		return word
	}
	return pluralizer().Singular(word)
}

// PascalCase joins the words of s with each word capitalized, e.g. "nested_value" becomes
// "NestedValue". Words are split on separators and on case changes; a word starting with a digit
// that is not the first word is prefixed with "_" so that "version 2" becomes "Version_2".
func PascalCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}

	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	var sb strings.Builder
	for i, word := range words {
		first, rest := splitFirst(word)
		if i > 0 && unicode.IsDigit(first) {
			sb.WriteByte('_')
			sb.WriteRune(first)
		} else {
			sb.WriteString(upper.String(string(first)))
		}
		sb.WriteString(lower.String(rest))
	}
	return sb.String()
}

func splitFirst(word string) (rune, string) {
	r, size := utf8.DecodeRuneInString(word)
	return r, word[size:]
}

// splitWords splits s on non alphanumeric runes, between a lower case letter or digit and an upper
// case letter ("fooBar"), and before the last upper case letter of an acronym followed by a lower
// case letter ("XMLHttp").
func splitWords(s string) []string {
	runes := []rune(s)

	var words []string
	start := -1
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if unicode.IsUpper(r) {
			prev := runes[i-1]
			acronymEnd := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || acronymEnd {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}
	return words
}
