package domain

import "time"

// AuditFields holds standard audit timestamps for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Currency identifies the settlement currency of an account or transaction.
type Currency string

const (
	KRW Currency = "KRW"
	USD Currency = "USD"
)

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	return c == KRW || c == USD
}
