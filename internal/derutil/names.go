package derutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var startingDigits = regexp.MustCompile(`^([\d]+)(.*)`)

// NormalizeName turns a descriptive ASN.1 name, like "id-ce-basicConstraints"
// or "sha256WithRSAEncryption", into an exported Go identifier:
// "IdCeBasicConstraints", "Sha256WithRSAEncryption".
func NormalizeName(s string) string {
	// 1. Replace every non-word char with a space
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return ' '
		}
		return r
	}, s)

	words := strings.Fields(s)

	// a Caser is stateful, so it is not shared between calls
	titler := cases.Title(language.Und, cases.NoLower)

	for i, w := range words {
		if i == 0 {
			// 2. If the first word begins with a digit, move the digits to the end of the word
			w = startingDigits.ReplaceAllString(w, `$2$1`)
		}

		// 3. Capitalize the first letter of each word, leaving the rest alone
		words[i] = titler.String(w)
	}

	// 4. Concatenate all words
	return strings.Join(words, "")
}
