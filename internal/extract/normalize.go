package extract

import (
	"strconv"
	"strings"

	"claims-assistant/internal/entity"
)

// Alias keys consulted per canonical field, in priority order. The model's
// key vocabulary is open; extend by appending aliases, never by branching on
// the source of the bag.
var (
	aliasClaimantName = []string{"name", "claimant_name", "claimant"}
	aliasPolicyNumber = []string{"policy_number", "policyNo", "policy"}
	aliasProvider     = []string{"hospital", "hospital_name", "pharmacy", "pharmacy_name", "provider"}
	aliasInvoiceDate  = []string{"invoice_date", "date"}
	aliasTotalAmount  = []string{"total_claim_amount", "total", "amount"}
	aliasItems        = []string{"itemized_list", "items"}
)

var currencyMarkerReplacer = strings.NewReplacer(",", "", "₹", "", "INR", "", "Rs.", "")

// Normalize maps a loosely-typed field bag into the canonical claim schema.
// Unknown keys are discarded, string totals are coerced to numbers (absent on
// failure, never retained as strings), and itemized lists keep only entries
// shaped like objects.
func Normalize(bag map[string]any) entity.CanonicalClaim {
	var c entity.CanonicalClaim

	c.ClaimantName = pickString(bag, aliasClaimantName...)
	c.PolicyNumber = pickString(bag, aliasPolicyNumber...)
	c.Provider = pickString(bag, aliasProvider...)
	c.InvoiceDate = pickString(bag, aliasInvoiceDate...)

	if v, ok := pick(bag, aliasTotalAmount...); ok {
		c.TotalClaimAmount = coerceAmount(v)
	}

	if v, ok := pick(bag, aliasItems...); ok {
		if seq, isSeq := v.([]any); isSeq {
			items := make([]entity.LineItem, 0, len(seq))
			for _, el := range seq {
				obj, isObj := el.(map[string]any)
				if !isObj {
					continue
				}
				items = append(items, entity.LineItem{
					Name:      obj["name"],
					Quantity:  obj["quantity"],
					UnitPrice: obj["unit_price"],
					Total:     obj["total"],
				})
			}
			c.Items = items
		}
	}

	return c
}

// pick returns the first present, non-empty value among the alias keys.
// Nil values, empty strings and empty lists count as absent.
func pick(bag map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := bag[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if t == "" {
				continue
			}
		case []any:
			if len(t) == 0 {
				continue
			}
		}
		return v, true
	}
	return nil, false
}

// pickString picks an alias value and renders it as a string. Numeric values
// are formatted (models sometimes emit policy numbers as JSON numbers);
// anything else is treated as absent.
func pickString(bag map[string]any, keys ...string) *string {
	v, ok := pick(bag, keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return &t
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	}
	return nil
}

// coerceAmount turns a picked total into a number, or nil when it cannot be
// one. String representations get thousands separators and known currency
// markers stripped before parsing; the raw string is never kept.
func coerceAmount(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		s := strings.TrimSpace(currencyMarkerReplacer.Replace(t))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}
