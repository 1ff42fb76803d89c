package rules

import (
	"strings"

	"claims-assistant/internal/entity"
)

// Matches reports whether a stored claim document satisfies every provided
// filter in the query; absent filters auto-pass. Name matching is a
// case-insensitive substring check, dates compare exactly, and the amount
// range is inclusive. A candidate without a numeric amount fails any range
// filter regardless of the other filters.
func Matches(doc map[string]any, q entity.MatchQuery) bool {
	if q.ClaimantName != nil {
		got, _ := doc["claimant_name"].(string)
		if !strings.Contains(strings.ToLower(got), strings.ToLower(*q.ClaimantName)) {
			return false
		}
	}

	if q.InvoiceDate != nil {
		got, _ := doc["invoice_date"].(string)
		if *q.InvoiceDate != got {
			return false
		}
	}

	if q.MinAmount != nil || q.MaxAmount != nil {
		amt, ok := documentAmount(doc)
		if !ok {
			return false
		}
		if q.MinAmount != nil && amt < *q.MinAmount {
			return false
		}
		if q.MaxAmount != nil && amt > *q.MaxAmount {
			return false
		}
	}

	return true
}

// documentAmount reads the claim amount, preferring a populated legacy
// total_amount key over the canonical total_claim_amount one.
func documentAmount(doc map[string]any) (float64, bool) {
	v := doc["total_amount"]
	if !populated(v) {
		v = doc["total_claim_amount"]
	}
	return asNumber(v)
}

func populated(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return true
}

// InDateWindow reports whether a document's invoice_date falls inside the
// inclusive [from, to] window under string ordering. Empty bounds are open;
// documents without a date never match a bounded window. The store does not
// range-filter on this field, so callers apply this post-fetch.
func InDateWindow(doc map[string]any, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	d, _ := doc["invoice_date"].(string)
	d = strings.TrimSpace(d)
	if d == "" {
		return false
	}
	if to == "" {
		to = "9999-12-31"
	}
	return from <= d && d <= to
}
