package raffle

import (
	"context"
	"strings"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// CreateRaffleParams carries the configuration of a new raffle. MaxTickets
// is optional; absent means no cap.
type CreateRaffleParams struct {
	MetadataURI string
	TicketPrice uint64
	EndTime     int64
	MinTickets  uint64
	MaxTickets  *uint64
}

// CreateRaffle validates the parameters against the fixed bounds, creates
// the raffle and its treasury in Open state and advances the global raffle
// counter by exactly one. Only the management authority may create raffles.
func (s *Service) CreateRaffle(ctx context.Context, caller ledger.Address, params CreateRaffleParams) (ledger.Address, error) {
	logger.Debug("creating raffle...", zap.String("uri", params.MetadataURI))

	var raffleAddress ledger.Address
	var created RaffleCreated

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		now := s.clock.Now()

		if err := validateRaffleParams(params, now.Unix()); err != nil {
			return err
		}

		config, err := getConfig(tx)
		if err != nil {
			return err
		}
		if caller != config.ManagementAuthority {
			return ErrNotManagementAuthority
		}

		// The counter doubles as the address-derivation salt, so two raffles
		// can never land on the same address.
		raffleAddress = RaffleAddress(config.RaffleCounter)
		treasuryAddress := TreasuryAddress(raffleAddress)

		raffle := &Raffle{
			Treasury:       treasuryAddress,
			MetadataURI:    params.MetadataURI,
			TicketPrice:    params.TicketPrice,
			CurrentTickets: 0,
			MinTickets:     params.MinTickets,
			MaxTickets:     params.MaxTickets,
			CreationTime:   now.Unix(),
			EndTime:        params.EndTime,
			State:          StateOpen,
			WinnerAddress:  nil,
			WinningTicket:  nil,
		}
		raffleData, err := encodeRecord(raffle)
		if err != nil {
			return err
		}
		if err := tx.Create(raffleAddress, KindRaffle, raffleData); err != nil {
			return err
		}

		treasuryData, err := encodeRecord(&Treasury{Raffle: raffleAddress})
		if err != nil {
			return err
		}
		if err := tx.Create(treasuryAddress, KindTreasury, treasuryData); err != nil {
			return err
		}

		config.RaffleCounter, err = checkedAdd(config.RaffleCounter, 1)
		if err != nil {
			return err
		}
		configData, err := encodeRecord(config)
		if err != nil {
			return err
		}
		if err := tx.Update(ConfigAddress(), configData); err != nil {
			return err
		}

		created = RaffleCreated{
			Raffle:       raffleAddress,
			MetadataURI:  params.MetadataURI,
			TicketPrice:  params.TicketPrice,
			MinTickets:   params.MinTickets,
			EndTime:      params.EndTime,
			CreationTime: now.Unix(),
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.emit(created)
	logger.Debug("creating raffle... done", zap.String("raffle", raffleAddress))
	return raffleAddress, nil
}

func validateRaffleParams(params CreateRaffleParams, now int64) error {
	valid := false
	for _, prefix := range validURIPrefixes {
		if strings.HasPrefix(params.MetadataURI, prefix) {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidMetadataURI
	}
	if len(params.MetadataURI) > MaxMetadataURILength {
		return ErrMetadataURITooLong
	}

	if params.TicketPrice < MinTicketPrice {
		return ErrTicketPriceTooLow
	}
	if params.TicketPrice > MaxTicketPrice {
		return ErrTicketPriceTooHigh
	}

	if params.MinTickets == 0 {
		return ErrMinTicketsTooLow
	}
	if params.MinTickets > MaxMinTickets {
		return ErrMinTicketsTooHigh
	}

	if params.MaxTickets != nil && *params.MaxTickets < params.MinTickets {
		return ErrMaxTicketsTooLow
	}

	if params.EndTime <= now+int64(MinDuration.Seconds()) {
		return ErrEndTimeTooClose
	}
	if params.EndTime > now+int64(MaxDuration.Seconds()) {
		return ErrDurationTooLong
	}

	return nil
}
