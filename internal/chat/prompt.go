package chat

import (
	"encoding/json"
	"strings"

	"claims-assistant/internal/entity"
)

// BuildQuestionPrompt grounds a free-form question in the user's claim
// documents. The model is told not to invent values beyond the claims JSON.
func BuildQuestionPrompt(question string, records []entity.ClaimRecord) string {
	docs := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		doc := rec.Doc
		if doc == nil {
			doc = map[string]any{}
		}
		docs = append(docs, doc)
	}
	claimsJSON, err := json.Marshal(docs)
	if err != nil {
		claimsJSON = []byte("[]")
	}

	var b strings.Builder
	b.WriteString("You are a friendly claims assistant. Answer the user's question about their claims.\n\n")
	b.WriteString("User question: ")
	b.WriteString(question)
	b.WriteString("\n\nClaims JSON:\n")
	b.Write(claimsJSON)
	b.WriteString("\n\nGuidelines:\n")
	b.WriteString("- Be concise, clear, and helpful.\n")
	b.WriteString("- If you reference a specific claim, mention its invoice date and amount.\n")
	b.WriteString("- If info is missing (e.g., no policy number), say what's missing.\n")
	b.WriteString("- If the question needs a calculation, do it and show the result.\n")
	b.WriteString("- Do NOT invent values not present in the claims JSON.\n")
	b.WriteString("- End with a short follow-up like: \"Anything else you want to check?\"\n")
	return b.String()
}
