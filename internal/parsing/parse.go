// Package parsing turns raw OCR text into structured receipt fields.
// Receipt layouts vary wildly, so every extractor here is a heuristic
// with an explicit "no value" answer instead of an error path: the
// worst case is an empty ParsedReceipt, never a failure.
package parsing

import (
	"strings"
	"time"
)

// ParsedReceipt holds the fields extracted from one OCR transcript.
// Every field is independently optional; an empty StoreName means the
// transcript had no lines at all.
type ParsedReceipt struct {
	StoreName string
	Date      *time.Time
	Total     *float64
	Items     []ParsedItem
}

// ParsedItem is a single line item: name plus price in dollars.
type ParsedItem struct {
	Name  string
	Price float64
}

// Parse extracts structured fields from raw OCR text. It is a pure
// function over its input: identical text always yields an identical
// result, and empty text yields an empty ParsedReceipt.
func Parse(rawText string) ParsedReceipt {
	text := Normalize(rawText)
	lines := splitLines(text)

	parsed := ParsedReceipt{
		StoreName: extractStoreName(lines),
		Date:      extractDate(text),
		Items:     extractItems(lines),
	}
	if total, ok := extractTotal(lines); ok {
		parsed.Total = &total
	}
	return parsed
}

// splitLines breaks text into trimmed, non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
