package parsing

import (
	"strings"
	"unicode"
)

// dashReplacer maps the typographic dashes OCR likes to emit back to
// plain ASCII so the date and money patterns only ever see "-".
var dashReplacer = strings.NewReplacer("—", "-", "–", "-", "−", "-")

// zeroReplacer fixes the classic O-read-for-0 confusion.
var zeroReplacer = strings.NewReplacer("O", "0", "o", "0")

// Normalize corrects superficial OCR artifacts before any pattern
// matching runs. Dash unification is safe everywhere. Letter-for-digit
// substitution is not: applied globally it would corrupt store names
// and item text, so it only runs inside tokens that already look
// numeric (digits plus money/date punctuation).
func Normalize(text string) string {
	text = dashReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	var token []rune
	flush := func() {
		if len(token) > 0 {
			b.WriteString(fixNumericToken(string(token)))
			token = token[:0]
		}
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			flush()
			b.WriteRune(r)
			continue
		}
		token = append(token, r)
	}
	flush()
	return b.String()
}

// fixNumericToken rewrites O to 0 when the token is otherwise numeric,
// e.g. "4O.99" or "2O26-02-24". Anything with real letters is returned
// untouched.
func fixNumericToken(tok string) string {
	hasDigit := false
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == 'O' || r == 'o':
		case strings.ContainsRune("$.,:/-()#", r):
		default:
			return tok
		}
	}
	if !hasDigit {
		return tok
	}
	return zeroReplacer.Replace(tok)
}
