package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// moneyPattern matches amounts like $12.34, 12.34, 1,234.56 and
// "CAD 99.00". Exactly two fractional digits are required so that
// quantities and product codes do not register as prices.
var moneyPattern = regexp.MustCompile(`(?i)(?:\$|CAD[ \t]*)?(\d{1,3}(?:[, ]\d{3})*\.\d{2}|\d+\.\d{2})`)

// groupSeparators strips thousands separators before conversion.
var groupSeparators = strings.NewReplacer(",", "", " ", "")

// lastMoneyValue returns the right-most money token in the line.
// Receipts align the authoritative amount at the right edge, so when a
// line carries quantity, unit price and line total, the last match is
// the one that counts.
func lastMoneyValue(line string) (float64, bool) {
	matches := moneyPattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return 0, false
	}
	raw := groupSeparators.Replace(matches[len(matches)-1][1])
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
