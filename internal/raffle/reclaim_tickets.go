package raffle

import (
	"context"
	"errors"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// ReclaimTickets refunds the caller's full ticket spend from an expired
// raffle's treasury and closes the TicketBalance record into the caller, so
// any balance sitting on the record comes back too. Closing the record makes
// the claim one-shot: a second reclaim finds nothing to refund.
func (s *Service) ReclaimTickets(ctx context.Context, caller, raffleAddress ledger.Address) (uint64, error) {
	logger.Debug("reclaiming tickets...",
		zap.String("raffle", raffleAddress), zap.String("owner", caller))

	var reclaimed TicketsReclaimed

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		raffle, err := getRaffle(tx, raffleAddress)
		if err != nil {
			return err
		}
		if raffle.State != StateExpired {
			return ErrRaffleNotExpired
		}

		balanceAddress := TicketBalanceAddress(raffleAddress, caller)
		ticketBalance, err := getTicketBalance(tx, balanceAddress)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return ErrNoTicketsOwned
			}
			return err
		}
		if ticketBalance.Owner != caller {
			return ErrOwnerMismatch
		}
		if ticketBalance.TicketCount == 0 {
			return ErrNoTicketsOwned
		}

		treasuryAddress := TreasuryAddress(raffleAddress)
		if raffle.Treasury != treasuryAddress {
			return ErrInvalidTreasury
		}

		refund, err := checkedMul(ticketBalance.TicketCount, raffle.TicketPrice)
		if err != nil {
			return err
		}

		if err := tx.Transfer(treasuryAddress, caller, refund); err != nil {
			if errors.Is(err, ledger.ErrInsufficientBalance) {
				return ErrInsufficientFunds
			}
			return err
		}

		if err := tx.Delete(balanceAddress, caller); err != nil {
			return err
		}

		reclaimed = TicketsReclaimed{
			Raffle:       raffleAddress,
			Owner:        caller,
			TicketCount:  ticketBalance.TicketCount,
			RefundAmount: refund,
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.emit(reclaimed)
	logger.Debug("reclaiming tickets... done", zap.Uint64("refund", reclaimed.RefundAmount))
	return reclaimed.RefundAmount, nil
}
