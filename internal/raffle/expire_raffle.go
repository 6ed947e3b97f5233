package raffle

import (
	"context"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// ExpireRaffle moves an under-subscribed raffle from Open to Expired once
// its end time has passed. Mutually exclusive with the draw path: a raffle
// that met its minimum can only be drawn, one that did not can only expire.
// No funds move here; buyers reclaim individually afterwards.
func (s *Service) ExpireRaffle(ctx context.Context, raffleAddress ledger.Address) error {
	logger.Debug("expiring raffle...", zap.String("raffle", raffleAddress))

	var expired RaffleExpired

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		raffle, err := getRaffle(tx, raffleAddress)
		if err != nil {
			return err
		}
		if raffle.State != StateOpen {
			return ErrRaffleNotOpen
		}

		now := s.clock.Now().Unix()
		if raffle.EndTime >= now {
			return ErrRaffleNotEnded
		}
		if raffle.CurrentTickets >= raffle.MinTickets {
			return ErrThresholdIsMet
		}

		raffle.State = StateExpired
		if err := putRaffle(tx, raffleAddress, raffle); err != nil {
			return err
		}

		expired = RaffleExpired{
			Raffle:           raffleAddress,
			ExpiredAt:        now,
			FinalTicketCount: raffle.CurrentTickets,
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(expired)
	return nil
}
