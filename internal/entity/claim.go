package entity

import (
	"time"

	"github.com/google/uuid"
)

// CanonicalClaim is the closed-schema record produced by the extraction
// pipeline. Pointer fields distinguish "absent" from zero values; absent
// fields are omitted entirely when the claim is serialized, so a stored
// document never carries null or empty-string canonical fields.
type CanonicalClaim struct {
	ClaimantName     *string    `json:"claimant_name,omitempty"`
	PolicyNumber     *string    `json:"policy_number,omitempty"`
	Provider         *string    `json:"provider,omitempty"`
	InvoiceDate      *string    `json:"invoice_date,omitempty"`
	TotalClaimAmount *float64   `json:"total_claim_amount,omitempty"`
	Items            []LineItem `json:"items,omitempty"`
}

// LineItem carries whatever the model supplied for an itemized entry.
// Sub-fields stay untyped; no arithmetic consistency is enforced between
// quantity, unit_price and total.
type LineItem struct {
	Name      any `json:"name,omitempty"`
	Quantity  any `json:"quantity,omitempty"`
	UnitPrice any `json:"unit_price,omitempty"`
	Total     any `json:"total,omitempty"`
}

// IsEmpty reports whether no field at all was extracted. An empty claim is
// a valid outcome and signals extraction failure to the caller.
func (c CanonicalClaim) IsEmpty() bool {
	return c.ClaimantName == nil &&
		c.PolicyNumber == nil &&
		c.Provider == nil &&
		c.InvoiceDate == nil &&
		c.TotalClaimAmount == nil &&
		c.Items == nil
}

// ClaimRecord is a persisted claim as read back from the document store.
// Doc holds the stored JSONB document; older documents may carry legacy
// keys (e.g. total_amount) alongside the canonical ones.
type ClaimRecord struct {
	ID        uuid.UUID      `json:"id"`
	UserID    string         `json:"user_id"`
	Doc       map[string]any `json:"doc"`
	CreatedAt time.Time      `json:"created_at"`
}

// MatchQuery is the filter set for claim verification. Nil fields auto-pass;
// all provided filters must pass together.
type MatchQuery struct {
	PolicyNumber string   `json:"policy_number"`
	ClaimantName *string  `json:"claimant_name,omitempty"`
	InvoiceDate  *string  `json:"invoice_date,omitempty"`
	MinAmount    *float64 `json:"min_amount,omitempty"`
	MaxAmount    *float64 `json:"max_amount,omitempty"`
}
