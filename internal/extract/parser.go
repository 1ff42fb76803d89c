package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reFencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	reBareJSON   = regexp.MustCompile(`(?s)(\{.*\})`)
)

// ParseObject extracts a single JSON object from raw model output. It never
// fails: any output without a parseable object yields an empty map, which
// callers must treat as "no structured data" rather than an error.
//
// A fenced code block is preferred; models that omit fencing are handled by
// taking the widest {...} span in the text. If strict parsing fails, a second
// attempt is made with embedded newlines collapsed to spaces, which recovers
// objects whose string values were broken across lines.
func ParseObject(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}

	var span string
	if m := reFencedJSON.FindStringSubmatch(raw); m != nil {
		span = m[1]
	} else if m := reBareJSON.FindStringSubmatch(raw); m != nil {
		span = m[1]
	} else {
		return map[string]any{}
	}

	var bag map[string]any
	if err := json.Unmarshal([]byte(span), &bag); err == nil {
		return bag
	}

	cleaned := strings.NewReplacer("\n", " ", "\r", " ").Replace(span)
	var retry map[string]any
	if err := json.Unmarshal([]byte(cleaned), &retry); err == nil {
		return retry
	}
	return map[string]any{}
}
