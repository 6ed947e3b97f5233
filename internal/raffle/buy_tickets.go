package raffle

import (
	"context"
	"errors"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// BuyTickets purchases ticketCount tickets for the caller. It creates an
// immutable Entry covering the contiguous range
// [current_tickets, current_tickets+ticketCount), advances the raffle and
// ticket-balance counters with checked arithmetic, and moves the payment
// into the treasury, verifying afterwards that the treasury balance grew by
// exactly the payment.
//
// The seed is caller-supplied so each purchase gets its own independently
// addressable entry; that is what makes range-based winner proof possible
// without scanning all purchases.
func (s *Service) BuyTickets(ctx context.Context, caller, raffleAddress ledger.Address, ticketCount uint64, seed [8]byte) (ledger.Address, error) {
	logger.Debug("buying tickets...",
		zap.String("raffle", raffleAddress),
		zap.String("buyer", caller),
		zap.Uint64("count", ticketCount))

	if ticketCount == 0 {
		return "", ErrInvalidTicketCount
	}

	entryAddress := EntryAddress(raffleAddress, seed)
	var purchased TicketsPurchased

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		raffle, err := getRaffle(tx, raffleAddress)
		if err != nil {
			return err
		}
		if raffle.State != StateOpen {
			return ErrRaffleNotOpen
		}
		if s.clock.Now().Unix() >= raffle.EndTime {
			return ErrRaffleEnded
		}

		newTotal, err := checkedAdd(raffle.CurrentTickets, ticketCount)
		if err != nil {
			return err
		}
		if raffle.MaxTickets != nil {
			if raffle.CurrentTickets >= *raffle.MaxTickets {
				return ErrMaximumTicketsSold
			}
			if newTotal > *raffle.MaxTickets {
				return ErrPurchaseExceedsThreshold
			}
		}

		payment, err := checkedMul(ticketCount, raffle.TicketPrice)
		if err != nil {
			return err
		}

		buyerBalance, err := tx.Balance(caller)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return ErrInsufficientFunds
			}
			return err
		}
		remaining, err := checkedSub(buyerBalance, payment)
		if err != nil || remaining == 0 {
			return ErrInsufficientFunds
		}

		treasuryAddress := TreasuryAddress(raffleAddress)
		if raffle.Treasury != treasuryAddress {
			return ErrInvalidTreasury
		}

		balanceAddress := TicketBalanceAddress(raffleAddress, caller)
		ticketBalance, err := getTicketBalance(tx, balanceAddress)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				return ErrTicketBalanceNotInitialized
			}
			return err
		}
		if ticketBalance.Owner != caller {
			return ErrTicketBalanceNotInitialized
		}

		entry := &Entry{
			Raffle:           raffleAddress,
			Owner:            caller,
			TicketCount:      ticketCount,
			TicketStartIndex: raffle.CurrentTickets,
			Seed:             seed,
		}
		entryData, err := encodeRecord(entry)
		if err != nil {
			return err
		}
		if err := tx.Create(entryAddress, KindEntry, entryData); err != nil {
			if errors.Is(err, ledger.ErrExists) {
				return ErrEntryExists
			}
			return err
		}

		raffle.CurrentTickets = newTotal
		if err := putRaffle(tx, raffleAddress, raffle); err != nil {
			return err
		}

		ticketBalance.TicketCount, err = checkedAdd(ticketBalance.TicketCount, ticketCount)
		if err != nil {
			return err
		}
		balanceData, err := encodeRecord(ticketBalance)
		if err != nil {
			return err
		}
		if err := tx.Update(balanceAddress, balanceData); err != nil {
			return err
		}

		// Transfer integrity: a transfer that reports success but does not
		// move the exact payment must fail the whole purchase.
		preTransfer, err := tx.Balance(treasuryAddress)
		if err != nil {
			return err
		}
		if err := tx.Transfer(caller, treasuryAddress, payment); err != nil {
			if errors.Is(err, ledger.ErrInsufficientBalance) {
				return ErrInsufficientFunds
			}
			return err
		}
		postTransfer, err := tx.Balance(treasuryAddress)
		if err != nil {
			return err
		}
		expected, err := checkedAdd(preTransfer, payment)
		if err != nil {
			return err
		}
		if postTransfer != expected {
			return ErrTransferFailed
		}

		purchased = TicketsPurchased{
			Raffle:           raffleAddress,
			Buyer:            caller,
			TicketCount:      ticketCount,
			PaymentAmount:    payment,
			TicketStartIndex: entry.TicketStartIndex,
			EntrySeed:        seed,
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.emit(purchased)
	logger.Debug("buying tickets... done",
		zap.String("entry", entryAddress),
		zap.Uint64("start_index", purchased.TicketStartIndex))
	return entryAddress, nil
}
