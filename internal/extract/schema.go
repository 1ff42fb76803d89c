package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildClaimJSONSchema returns the canonical claim shape as a JSON-Schema
// (draft 2020-12 subset) generic map. Every field is optional: an empty claim
// is a valid extraction outcome.
func BuildClaimJSONSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{},
			"quantity":   map[string]any{},
			"unit_price": map[string]any{},
			"total":      map[string]any{},
		},
		"additionalProperties": false,
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"claimant_name":      map[string]any{"type": "string", "minLength": 1},
			"policy_number":      map[string]any{"type": "string", "minLength": 1},
			"provider":           map[string]any{"type": "string", "minLength": 1},
			"invoice_date":       map[string]any{"type": "string", "minLength": 1},
			"total_claim_amount": map[string]any{"type": "number"},
			"items":              map[string]any{"type": "array", "items": item},
		},
		"additionalProperties": false,
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
