package raffle

import (
	"context"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// SetWinner resolves the drawn index to an owner by presenting the entry
// identified by seed. The entry's range must contain the winning ticket;
// the owner recorded in that entry becomes the winner and the raffle moves
// from Drawing to Drawn. Caller-supplied identity is never trusted: the
// membership check is explicit.
func (s *Service) SetWinner(ctx context.Context, raffleAddress ledger.Address, seed [8]byte) (ledger.Address, error) {
	logger.Debug("setting winner...", zap.String("raffle", raffleAddress))

	var set WinnerSet

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		raffle, err := getRaffle(tx, raffleAddress)
		if err != nil {
			return err
		}
		if raffle.State != StateDrawing {
			return ErrRaffleNotDrawing
		}
		if raffle.WinningTicket == nil {
			return ErrNoWinningTicket
		}
		winningTicket := *raffle.WinningTicket

		entry, err := getEntry(tx, EntryAddress(raffleAddress, seed))
		if err != nil {
			return err
		}
		if entry.Raffle != raffleAddress {
			return ErrInvalidWinningEntry
		}
		end, err := checkedAdd(entry.TicketStartIndex, entry.TicketCount)
		if err != nil {
			return err
		}
		if winningTicket < entry.TicketStartIndex || winningTicket >= end {
			return ErrInvalidWinningEntry
		}

		winner := entry.Owner
		raffle.WinnerAddress = &winner
		raffle.State = StateDrawn
		if err := putRaffle(tx, raffleAddress, raffle); err != nil {
			return err
		}

		set = WinnerSet{Raffle: raffleAddress, Winner: winner, WinningTicket: winningTicket}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.emit(set)
	logger.Debug("setting winner... done", zap.String("winner", set.Winner))
	return set.Winner, nil
}
