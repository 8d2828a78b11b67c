package mapping

import (
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/models"
)

// ToModelCashTransaction converts a domain CashTransaction to its model form.
func ToModelCashTransaction(d domain.CashTransaction) models.CashTransaction {
	return models.CashTransaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Type:          models.CashTransactionType(d.Type),
		Date:          d.Date,
		Amount:        d.Amount,
		Currency:      models.Currency(d.Currency),
		ExchangeRate:  d.ExchangeRate,
		ExchangeFee:   d.ExchangeFee,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashTransaction converts a model CashTransaction to its domain form.
func ToDomainCashTransaction(m models.CashTransaction) domain.CashTransaction {
	return domain.CashTransaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Type:          domain.CashTransactionType(m.Type),
		Date:          m.Date,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		ExchangeRate:  m.ExchangeRate,
		ExchangeFee:   m.ExchangeFee,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCashTransactionSlice converts model cash transactions to domain form.
func ToDomainCashTransactionSlice(ms []models.CashTransaction) []domain.CashTransaction {
	ds := make([]domain.CashTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashTransaction(m)
	}
	return ds
}

// ToModelStockTransaction converts a domain StockTransaction to its model form.
func ToModelStockTransaction(d domain.StockTransaction) models.StockTransaction {
	return models.StockTransaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		StockID:       d.StockID,
		Type:          models.TradeType(d.Type),
		Date:          d.Date,
		Quantity:      d.Quantity,
		PricePerShare: d.PricePerShare,
		Fee:           d.Fee,
		Currency:      models.Currency(d.Currency),
		ExchangeRate:  d.ExchangeRate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockTransaction converts a model StockTransaction to its domain form.
func ToDomainStockTransaction(m models.StockTransaction) domain.StockTransaction {
	return domain.StockTransaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		StockID:       m.StockID,
		Type:          domain.TradeType(m.Type),
		Date:          m.Date,
		Quantity:      m.Quantity,
		PricePerShare: m.PricePerShare,
		Fee:           m.Fee,
		Currency:      domain.Currency(m.Currency),
		ExchangeRate:  m.ExchangeRate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockTransactionSlice converts model stock transactions to domain form.
func ToDomainStockTransactionSlice(ms []models.StockTransaction) []domain.StockTransaction {
	ds := make([]domain.StockTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockTransaction(m)
	}
	return ds
}
