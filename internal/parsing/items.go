package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// itemSkipWords mark lines that carry totals or payment data rather
// than purchasable items.
var itemSkipWords = []string{
	"total", "subtotal", "tax", "hst", "gst", "balance",
	"visa", "debit", "change", "tender",
}

var (
	// itemPricePattern anchors a plain price at the end of the line.
	itemPricePattern = regexp.MustCompile(`([0-9]+\.[0-9]{2})[ \t]*$`)

	doubleSpacePattern = regexp.MustCompile(`  +`)
)

// extractItems pulls "name ... price" lines in source order. Duplicate
// names are kept as-is; receipts legitimately repeat items.
func extractItems(lines []string) []ParsedItem {
	var items []ParsedItem
	for _, line := range lines {
		if containsAny(strings.ToLower(line), itemSkipWords) {
			continue
		}
		loc := itemPricePattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		price, err := strconv.ParseFloat(line[loc[2]:loc[3]], 64)
		if err != nil {
			continue
		}

		name := strings.TrimSpace(line[:loc[2]])
		name = strings.ReplaceAll(name, "$", "")
		name = doubleSpacePattern.ReplaceAllString(name, " ")
		name = strings.TrimSpace(name)
		if len([]rune(name)) < 2 {
			continue
		}

		items = append(items, ParsedItem{Name: name, Price: price})
	}
	return items
}
