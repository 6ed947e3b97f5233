package raffle

import (
	"context"
	"errors"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// WithdrawTreasury drains the treasury down to the platform reserve floor
// and sends the remainder to the configured payout authority. Gated on the
// management authority and on the minimum ticket threshold being met, so an
// under-subscribed raffle that could still be refunded can never be drained.
func (s *Service) WithdrawTreasury(ctx context.Context, caller, raffleAddress ledger.Address) (uint64, error) {
	logger.Debug("withdrawing from treasury...", zap.String("raffle", raffleAddress))

	var withdrawn TreasuryWithdrawn

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		config, err := getConfig(tx)
		if err != nil {
			return err
		}
		if caller != config.ManagementAuthority {
			return ErrNotManagementAuthority
		}

		raffle, err := getRaffle(tx, raffleAddress)
		if err != nil {
			return err
		}
		if raffle.CurrentTickets < raffle.MinTickets {
			return ErrThresholdNotMet
		}

		treasuryAddress := TreasuryAddress(raffleAddress)
		if raffle.Treasury != treasuryAddress {
			return ErrInvalidTreasury
		}

		balance, err := tx.Balance(treasuryAddress)
		if err != nil {
			return err
		}
		amount, err := checkedSub(balance, tx.Reserve())
		if err != nil || amount == 0 {
			return ErrInsufficientFunds
		}

		if err := tx.Transfer(treasuryAddress, config.PayoutAuthority, amount); err != nil {
			if errors.Is(err, ledger.ErrInsufficientBalance) {
				return ErrInsufficientFunds
			}
			return err
		}

		withdrawn = TreasuryWithdrawn{Raffle: raffleAddress, Amount: amount}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.emit(withdrawn)
	logger.Debug("withdrawing from treasury... done", zap.Uint64("amount", withdrawn.Amount))
	return withdrawn.Amount, nil
}
