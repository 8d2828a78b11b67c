package mapping

import (
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/models"
)

// ToModelStock converts a domain Stock to its model form.
func ToModelStock(d domain.Stock) models.Stock {
	return models.Stock{
		StockID:     d.StockID,
		Symbol:      d.Symbol,
		Name:        d.Name,
		Market:      string(d.Market),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStock converts a model Stock to its domain form.
func ToDomainStock(m models.Stock) domain.Stock {
	return domain.Stock{
		StockID:     m.StockID,
		Symbol:      m.Symbol,
		Name:        m.Name,
		Market:      domain.MarketCode(m.Market),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockSlice converts model stocks to domain form.
func ToDomainStockSlice(ms []models.Stock) []domain.Stock {
	ds := make([]domain.Stock, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStock(m)
	}
	return ds
}

// ToModelStockHolding converts a domain StockHolding to its model form.
func ToModelStockHolding(d domain.StockHolding) models.StockHolding {
	return models.StockHolding{
		HoldingID:   d.HoldingID,
		AccountID:   d.AccountID,
		StockID:     d.StockID,
		Quantity:    d.Quantity,
		AverageCost: d.AverageCost,
		TotalCost:   d.TotalCost,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockHolding converts a model StockHolding to its domain form.
func ToDomainStockHolding(m models.StockHolding) domain.StockHolding {
	return domain.StockHolding{
		HoldingID:   m.HoldingID,
		AccountID:   m.AccountID,
		StockID:     m.StockID,
		Quantity:    m.Quantity,
		AverageCost: m.AverageCost,
		TotalCost:   m.TotalCost,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockHoldingSlice converts model holdings to domain form.
func ToDomainStockHoldingSlice(ms []models.StockHolding) []domain.StockHolding {
	ds := make([]domain.StockHolding, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockHolding(m)
	}
	return ds
}
