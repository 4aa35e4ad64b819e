package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// storeNameBlacklist disqualifies header lines that belong to the
// payment block rather than the store banner.
var storeNameBlacklist = []string{
	"total", "subtotal", "tax", "visa", "mastercard", "debit", "cash", "change",
}

var (
	dateLikePattern  = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}[-/]\d{1,2}[-/]\d{1,2}`)
	phoneLikePattern = regexp.MustCompile(`\(?\d{3}\)?[ -]?\d{3}[ -]?\d{4}`)
)

// extractStoreName guesses the merchant from the top of the receipt.
// Store identity is printed in the first few lines, so only the first
// 8 are considered. A candidate must be mostly letters and must not
// look like a date, a phone number, or part of the payment block. The
// very first line is the last resort: a store name exists whenever any
// line does.
func extractStoreName(lines []string) string {
	limit := min(len(lines), 8)
	for _, line := range lines[:limit] {
		if containsAny(strings.ToLower(line), storeNameBlacklist) {
			continue
		}
		if dateLikePattern.MatchString(line) || phoneLikePattern.MatchString(line) {
			continue
		}
		runes := []rune(line)
		if len(runes) < 3 {
			continue
		}
		letters := 0
		for _, r := range runes {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters >= max(3, len(runes)/2) {
			return line
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}
