package service

import (
	"fmt"

	"github.com/fsdevblog/castile-money/pkg/uow"
)

type AppServices struct {
	Ledger *LedgerService
}

func Factory(unitOfWork uow.UOW, settings LedgerSettings) (*AppServices, error) {
	ledger, ledgerErr := NewLedgerService(unitOfWork, settings)
	if ledgerErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerErr.Error())
	}

	return &AppServices{
		Ledger: ledger,
	}, nil
}
