package raffle

import (
	"context"
	"errors"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// OpenTicketBalance creates the caller's zeroed TicketBalance for a raffle.
// One per (raffle, buyer) pair; it must exist before the first purchase.
func (s *Service) OpenTicketBalance(ctx context.Context, caller, raffleAddress ledger.Address) (ledger.Address, error) {
	logger.Debug("opening ticket balance...",
		zap.String("raffle", raffleAddress), zap.String("owner", caller))

	balanceAddress := TicketBalanceAddress(raffleAddress, caller)

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		raffle, err := getRaffle(tx, raffleAddress)
		if err != nil {
			return err
		}
		if raffle.State != StateOpen {
			return ErrRaffleNotOpen
		}

		data, err := encodeRecord(&TicketBalance{Owner: caller, TicketCount: 0})
		if err != nil {
			return err
		}
		if err := tx.Create(balanceAddress, KindTicketBalance, data); err != nil {
			if errors.Is(err, ledger.ErrExists) {
				return ErrTicketBalanceExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return balanceAddress, nil
}
