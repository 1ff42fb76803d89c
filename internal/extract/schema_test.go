package extract

import "testing"

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := BuildClaimJSONSchema()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"empty claim", `{}`, false},
		{"full claim", `{"claimant_name":"John Doe","policy_number":"POL-991","provider":"City Hospital","invoice_date":"2025-01-15","total_claim_amount":1250.5,"items":[{"name":"Paracetamol","quantity":10,"unit_price":5,"total":50}]}`, false},
		{"string total", `{"total_claim_amount":"1,250.00"}`, true},
		{"unknown key", `{"diagnosis":"flu"}`, true},
		{"non-object item", `{"items":["Paracetamol x10"]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONAgainstSchema(schema, []byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
