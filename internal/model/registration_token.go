package model

import "time"

// RegistrationToken is a single-use, time-limited invitation capability.
// Once Used flips to true it never reverts; UsedBy/UsedAt are set exactly
// once, on consumption.
type RegistrationToken struct {
	ID        int        `json:"id"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Used      bool       `json:"used"`
	UsedBy    *int       `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedBy int        `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// RegistrationTokenSummary is the admin-facing listing view: the issuer and
// consumer are resolved to emails, and no credential material is included.
type RegistrationTokenSummary struct {
	ID             int        `json:"id"`
	Token          string     `json:"token"`
	ExpiresAt      time.Time  `json:"expires_at"`
	Used           bool       `json:"used"`
	UsedAt         *time.Time `json:"used_at,omitempty"`
	UsedByEmail    *string    `json:"used_by_email,omitempty"`
	CreatedByEmail string     `json:"created_by_email"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Token list filters accepted by the admin listing endpoint.
const (
	TokenFilterAll     = "all"
	TokenFilterActive  = "active"
	TokenFilterUsed    = "used"
	TokenFilterExpired = "expired"
)

// ValidTokenFilter reports whether filter is one of the accepted list filters.
func ValidTokenFilter(filter string) bool {
	switch filter {
	case TokenFilterAll, TokenFilterActive, TokenFilterUsed, TokenFilterExpired:
		return true
	}
	return false
}
