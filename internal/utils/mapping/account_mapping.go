package mapping

import (
	"github.com/smapp-dev/stock_manager_app/internal/core/domain"
	"github.com/smapp-dev/stock_manager_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		OwnerName:      d.OwnerName,
		Broker:         d.Broker,
		AccountNumber:  d.AccountNumber,
		AccountType:    models.AccountType(d.AccountType),
		Currency:       models.Currency(d.Currency),
		InitialBalance: d.InitialBalance,
		CurrentBalance: d.CurrentBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		OwnerName:      m.OwnerName,
		Broker:         m.Broker,
		AccountNumber:  m.AccountNumber,
		AccountType:    domain.AccountType(m.AccountType),
		Currency:       domain.Currency(m.Currency),
		InitialBalance: m.InitialBalance,
		CurrentBalance: m.CurrentBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
