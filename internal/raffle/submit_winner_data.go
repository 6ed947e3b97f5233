package raffle

import (
	"context"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// SubmitWinnerData stores the winner's payload and moves the raffle from
// Drawn to Claimed, the terminal business action. Only the recorded winner
// may submit, exactly once; a second call fails the state check because the
// raffle is no longer Drawn.
func (s *Service) SubmitWinnerData(ctx context.Context, caller, raffleAddress ledger.Address, data []byte) error {
	logger.Debug("submitting winner data...", zap.String("raffle", raffleAddress))

	if len(data) == 0 || len(data) > MaxWinnerDataLength {
		return ErrInvalidDataLength
	}

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		raffle, err := getRaffle(tx, raffleAddress)
		if err != nil {
			return err
		}
		if raffle.State != StateDrawn {
			return ErrRaffleNotDrawn
		}
		if raffle.WinnerAddress == nil || caller != *raffle.WinnerAddress {
			return ErrNotWinner
		}

		winnerData, err := encodeRecord(&WinnerData{Data: data})
		if err != nil {
			return err
		}
		if err := tx.Create(WinnerDataAddress(raffleAddress, caller), KindWinnerData, winnerData); err != nil {
			return err
		}

		raffle.State = StateClaimed
		return putRaffle(tx, raffleAddress, raffle)
	})
	if err != nil {
		return err
	}

	s.emit(WinnerDataSubmitted{Raffle: raffleAddress})
	return nil
}
