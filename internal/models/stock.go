package models

// Stock represents one row of the stocks table.
type Stock struct {
	StockID string `db:"stock_id"`
	Symbol  string `db:"symbol"`
	Name    string `db:"name"`
	Market  string `db:"market"`
	AuditFields
}
