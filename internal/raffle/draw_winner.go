package raffle

import (
	"context"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// DrawWinner draws the winning ticket index and moves the raffle from Open
// to Drawing. Permitted once the end time has passed or the ticket cap is
// reached, and only when the minimum ticket threshold is met. The index is
// produced by the draw engine from host entropy; resolving it to an owner is
// a separate step (SetWinner).
func (s *Service) DrawWinner(ctx context.Context, raffleAddress ledger.Address) (uint64, error) {
	logger.Debug("drawing winning ticket...", zap.String("raffle", raffleAddress))

	var drawn WinningTicketDrawn

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		raffle, err := getRaffle(tx, raffleAddress)
		if err != nil {
			return err
		}
		if raffle.State != StateOpen {
			return ErrRaffleNotOpen
		}

		ended := s.clock.Now().Unix() >= raffle.EndTime
		capReached := raffle.MaxTickets != nil && raffle.CurrentTickets == *raffle.MaxTickets
		if !ended && !capReached {
			return ErrRaffleNotEnded
		}
		if raffle.CurrentTickets < raffle.MinTickets {
			return ErrInsufficientTickets
		}

		winningTicket, err := s.engine.Draw(raffle.CurrentTickets)
		if err != nil {
			return err
		}

		raffle.WinningTicket = &winningTicket
		raffle.State = StateDrawing
		if err := putRaffle(tx, raffleAddress, raffle); err != nil {
			return err
		}

		drawn = WinningTicketDrawn{Raffle: raffleAddress, WinningTicket: winningTicket}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.emit(drawn)
	logger.Debug("drawing winning ticket... done", zap.Uint64("winning_ticket", drawn.WinningTicket))
	return drawn.WinningTicket, nil
}
