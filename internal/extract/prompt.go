package extract

import "strings"

// BuildExtractionPrompt composes the fixed-structure instruction asking the
// model for the six canonical claim concepts as JSON. Key names here feed the
// normalizer's alias table, so changes to either must stay in step.
func BuildExtractionPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You are an insurance claims assistant. Extract and normalize details from this invoice text and respond ONLY in JSON:\n\n")
	b.WriteString("Required keys:\n")
	b.WriteString("- \"name\" (string)\n")
	b.WriteString("- \"policy_number\" (string or null)\n")
	b.WriteString("- \"hospital\" or \"pharmacy\" (string; use one)\n")
	b.WriteString("- \"invoice_date\" (string)\n")
	b.WriteString("- \"total_claim_amount\" (number)\n")
	b.WriteString("- \"itemized_list\" (array of objects with keys: name, quantity, unit_price, total)\n\n")
	b.WriteString("Text:\n")
	b.WriteString(text)
	return b.String()
}
