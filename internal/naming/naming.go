// Package naming provides shared string case conversion utilities.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s into lower-case words.
//
// Any run of characters that is neither a letter nor a digit separates words.
// A word also ends before an upper-case letter that follows a lower-case
// letter or digit ("userId" -> "user", "id"), and before the last upper-case
// letter of an acronym that is followed by a lower-case letter
// ("APIClient" -> "api", "client").
func Words(s string) []string {
	runes := []rune(s)
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return words
}

// ToKebabCase converts a string to kebab-case.
// Example: "UserProfile" -> "user-profile"
// Example: "api_client" -> "api-client"
func ToKebabCase(s string) string {
	return strings.Join(Words(s), "-")
}

// ToDotCase converts a string to dot.case.
// Example: "userId" -> "user.id"
func ToDotCase(s string) string {
	return strings.Join(Words(s), ".")
}

// ToPascalCase converts a string to PascalCase.
// Words that start with a digit are joined with an underscore so the digit
// does not merge into the previous word.
// Example: "user_profile" -> "UserProfile"
// Example: "api 2" -> "Api_2"
func ToPascalCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}

	title := cases.Title(language.Und, cases.NoLower)
	var result strings.Builder
	for i, w := range words {
		if unicode.IsDigit([]rune(w)[0]) {
			if i > 0 {
				result.WriteByte('_')
			}
			result.WriteString(w)
			continue
		}
		result.WriteString(title.String(w))
	}
	return result.String()
}
