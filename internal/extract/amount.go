package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Currency-token patterns for the fallback amount scan. The keyworded form
// anchors on a total-indicating phrase; the bare form matches any
// currency-marked numeric token.
var (
	reKeywordAmount = regexp.MustCompile(`(?i)(?:total\s*amount|grand\s*total|amount\s*due|net\s*payable|balance\s*due|total)\s*[:\-]?\s*(?:₹|INR|Rs\.?)\s*([0-9][0-9,]*\.?[0-9]{0,2})`)
	reBareAmount    = regexp.MustCompile(`(?i)(?:₹|INR|Rs\.?)\s*([0-9][0-9,]*\.?[0-9]{0,2})`)
)

// Amount locates a monetary total in free text. Keyworded matches win, and
// the last of them is taken since totals tend to appear after itemized
// breakdowns. Without a keyworded match the maximum bare currency token is
// returned on the assumption that the grand total is the largest figure.
// This is a best-effort safety net; parse failures never surface as errors.
func Amount(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	if ms := reKeywordAmount.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		if v, err := parseAmount(ms[len(ms)-1][1]); err == nil {
			return v, true
		}
	}

	if ms := reBareAmount.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		var best float64
		for i, m := range ms {
			v, err := parseAmount(m[1])
			if err != nil {
				return 0, false
			}
			if i == 0 || v > best {
				best = v
			}
		}
		return best, true
	}

	return 0, false
}

func parseAmount(token string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
}
