package types

import "github.com/google/uuid"

// GuestCartLine is one line of a client-held guest cart. The cached unit
// price, when present and positive, was resolved when the guest added the
// item and survives the merge into an authenticated cart.
type GuestCartLine struct {
	VariantID              uuid.UUID `json:"variantId"`
	Quantity               int       `json:"quantity"`
	ResolvedUnitPriceCents *int      `json:"resolvedUnitPriceCents,omitempty"`
}

// GuestCartSnapshot is the merge payload a client sends at login. The guest
// cart lives entirely on the client; this value object is the only shape in
// which it ever reaches the server.
type GuestCartSnapshot struct {
	LocalID string          `json:"localId,omitempty"`
	Lines   []GuestCartLine `json:"lines"`
}

// IsEmpty reports whether the snapshot carries no lines.
func (s GuestCartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
