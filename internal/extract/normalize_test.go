package extract

import (
	"reflect"
	"testing"
)

func TestNormalize_AliasPriority(t *testing.T) {
	bag := map[string]any{
		"name":          "John Doe",
		"claimant_name": "J. Doe",
	}
	claim := Normalize(bag)
	if claim.ClaimantName == nil || *claim.ClaimantName != "John Doe" {
		t.Errorf("expected 'name' to win over 'claimant_name', got %v", claim.ClaimantName)
	}
}

func TestNormalize_ProviderCollapsesHospitalAndPharmacy(t *testing.T) {
	tests := []struct {
		name string
		bag  map[string]any
		want string
	}{
		{"hospital", map[string]any{"hospital": "City Hospital"}, "City Hospital"},
		{"pharmacy", map[string]any{"pharmacy_name": "ABC Pharmacy"}, "ABC Pharmacy"},
		{"hospital beats pharmacy", map[string]any{"hospital": "City Hospital", "pharmacy": "ABC Pharmacy"}, "City Hospital"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := Normalize(tt.bag)
			if claim.Provider == nil || *claim.Provider != tt.want {
				t.Errorf("expected provider %q, got %v", tt.want, claim.Provider)
			}
		})
	}
}

func TestNormalize_TotalCoercion(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		absent bool
	}{
		{"plain number", 1200.5, 1200.5, false},
		{"string with separators", "1,234.50", 1234.50, false},
		{"string with rupee symbol", "₹2,500.00", 2500.00, false},
		{"string with INR", "INR 980", 980, false},
		{"string with Rs.", "Rs. 42.75", 42.75, false},
		{"unparseable string", "abc", 0, true},
		{"null", nil, 0, true},
		{"empty string", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := Normalize(map[string]any{"total_claim_amount": tt.value})
			if tt.absent {
				if claim.TotalClaimAmount != nil {
					t.Errorf("expected absent total, got %v", *claim.TotalClaimAmount)
				}
				return
			}
			if claim.TotalClaimAmount == nil {
				t.Fatal("expected a total")
			}
			if *claim.TotalClaimAmount != tt.want {
				t.Errorf("expected %v, got %v", tt.want, *claim.TotalClaimAmount)
			}
		})
	}
}

func TestNormalize_ItemsShapeEnforcement(t *testing.T) {
	bag := map[string]any{
		"itemized_list": []any{
			map[string]any{"name": "Paracetamol", "quantity": 10.0, "unit_price": 5.0, "total": 50.0, "batch": "B-12"},
			"not an object",
			42.0,
			map[string]any{"name": "Cough Syrup"},
		},
	}
	claim := Normalize(bag)
	if len(claim.Items) != 2 {
		t.Fatalf("expected 2 items after dropping malformed entries, got %d", len(claim.Items))
	}
	first := claim.Items[0]
	if first.Name != "Paracetamol" || first.Quantity != 10.0 || first.UnitPrice != 5.0 || first.Total != 50.0 {
		t.Errorf("unexpected first item: %+v", first)
	}
	second := claim.Items[1]
	if second.Name != "Cough Syrup" || second.Quantity != nil || second.UnitPrice != nil || second.Total != nil {
		t.Errorf("missing sub-fields should stay absent, got %+v", second)
	}
}

func TestNormalize_ItemsNotASequence(t *testing.T) {
	claim := Normalize(map[string]any{"items": "Paracetamol x10"})
	if claim.Items != nil {
		t.Errorf("expected absent items, got %v", claim.Items)
	}
}

func TestNormalize_UnknownKeysDiscarded(t *testing.T) {
	claim := Normalize(map[string]any{
		"diagnosis": "flu",
		"ward":      "B2",
	})
	if !claim.IsEmpty() {
		t.Errorf("expected empty claim from unknown keys, got %+v", claim)
	}
}

func TestNormalize_EmptyBagYieldsEmptyClaim(t *testing.T) {
	claim := Normalize(map[string]any{})
	if !claim.IsEmpty() {
		t.Errorf("expected empty claim, got %+v", claim)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first := Normalize(map[string]any{
		"claimant_name":      "John Doe",
		"policy_number":      "POL-991",
		"provider":           "City Hospital",
		"invoice_date":       "2025-01-15",
		"total_claim_amount": 1250.0,
		"items": []any{
			map[string]any{"name": "Paracetamol", "quantity": 10.0, "unit_price": 5.0, "total": 50.0},
		},
	})

	// Feed the canonical shape straight back in using canonical key names.
	again := Normalize(map[string]any{
		"claimant_name":      *first.ClaimantName,
		"policy_number":      *first.PolicyNumber,
		"provider":           *first.Provider,
		"invoice_date":       *first.InvoiceDate,
		"total_claim_amount": *first.TotalClaimAmount,
		"items": []any{
			map[string]any{
				"name":       first.Items[0].Name,
				"quantity":   first.Items[0].Quantity,
				"unit_price": first.Items[0].UnitPrice,
				"total":      first.Items[0].Total,
			},
		},
	})

	if !reflect.DeepEqual(first, again) {
		t.Errorf("normalization is not idempotent:\nfirst:  %+v\nsecond: %+v", first, again)
	}
}

func TestNormalize_NumericPolicyNumberFormatted(t *testing.T) {
	claim := Normalize(map[string]any{"policy_number": 12345.0})
	if claim.PolicyNumber == nil || *claim.PolicyNumber != "12345" {
		t.Errorf("expected \"12345\", got %v", claim.PolicyNumber)
	}
}
