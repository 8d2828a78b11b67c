package domain

// MarketCode identifies the exchange a stock trades on. The set mirrors the
// venue codes used by Korean brokerages for domestic and overseas trading.
type MarketCode string

const (
	MarketKRX MarketCode = "KRX" // Korea Exchange
	MarketHKS MarketCode = "HKS" // Hong Kong
	MarketNYS MarketCode = "NYS" // New York
	MarketNAS MarketCode = "NAS" // Nasdaq
	MarketAMS MarketCode = "AMS" // Amex
	MarketTSE MarketCode = "TSE" // Tokyo
	MarketSHS MarketCode = "SHS" // Shanghai
	MarketSZS MarketCode = "SZS" // Shenzhen
	MarketSHI MarketCode = "SHI" // Shanghai index
	MarketSZI MarketCode = "SZI" // Shenzhen index
	MarketHSX MarketCode = "HSX" // Ho Chi Minh
	MarketHNX MarketCode = "HNX" // Hanoi
	MarketBAY MarketCode = "BAY" // New York daytime session
	MarketBAQ MarketCode = "BAQ" // Nasdaq daytime session
	MarketBAA MarketCode = "BAA" // Amex daytime session
)

// IsValid reports whether m is one of the recognised market codes.
func (m MarketCode) IsValid() bool {
	switch m {
	case MarketKRX, MarketHKS, MarketNYS, MarketNAS, MarketAMS, MarketTSE,
		MarketSHS, MarketSZS, MarketSHI, MarketSZI, MarketHSX, MarketHNX,
		MarketBAY, MarketBAQ, MarketBAA:
		return true
	}
	return false
}

// Stock identifies a tradable instrument. Stocks are looked up or created on
// first reference by a trade; symbol is unique across the system.
type Stock struct {
	StockID string     `json:"stockID"`
	Symbol  string     `json:"symbol"`
	Name    string     `json:"name"`
	Market  MarketCode `json:"market"`
	AuditFields
}
