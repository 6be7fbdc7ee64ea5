package services

import (
	portsrepo "github.com/machiport/points_backend/internal/core/ports/repositories"
	portssvc "github.com/machiport/points_backend/internal/core/ports/services"
)

// NewServiceContainer wires the repositories into the full service set
// used by the handlers.
func NewServiceContainer(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:  NewAccountService(accountRepo, ledgerRepo),
		Bonus:    NewBonusService(accountRepo),
		Transfer: NewTransferService(accountRepo),
	}
}
