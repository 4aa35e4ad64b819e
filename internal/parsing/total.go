package parsing

import "strings"

// totalKeywords are the labels that anchor the final amount line.
var totalKeywords = []string{
	"total", "grand total", "amount", "amount due", "balance due",
	"total due", "amount payable", "due",
}

// fallbackExcludeWords disqualify a line from the bottom-section
// fallback: these amounts sit near the total but never are it.
var fallbackExcludeWords = []string{"tax", "hst", "gst", "subtotal"}

// extractTotal resolves the receipt total from normalized lines.
//
// Keyword-anchored lines are scanned bottom-up first: the grand total
// sits below any subtotal that shares the word "total", so the lowest
// keyword line with a readable amount wins. When OCR garbles the label
// entirely, the fallback takes the largest amount in the bottom 40% of
// the receipt, skipping tax and subtotal lines, on the assumption that
// totals are both near the bottom and larger than any single item.
func extractTotal(lines []string) (float64, bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		if !containsAny(strings.ToLower(lines[i]), totalKeywords) {
			continue
		}
		if value, ok := lastMoneyValue(lines[i]); ok {
			return value, true
		}
	}

	start := int(float64(len(lines)) * 0.6)
	var best float64
	found := false
	for _, line := range lines[start:] {
		if containsAny(strings.ToLower(line), fallbackExcludeWords) {
			continue
		}
		if value, ok := lastMoneyValue(line); ok && (!found || value > best) {
			best = value
			found = true
		}
	}
	return best, found
}
