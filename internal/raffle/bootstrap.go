package raffle

import (
	"context"
	"errors"

	"raffle/internal/ledger"
	"raffle/internal/logger"

	"go.uber.org/zap"
)

// BootstrapConfig creates the singleton Config record with the raffle counter
// at zero. The caller becomes the upgrade authority. Re-initialization is
// rejected explicitly.
func (s *Service) BootstrapConfig(ctx context.Context, caller, payout, management ledger.Address) (ledger.Address, error) {
	logger.Debug("bootstrapping config...",
		zap.String("payout", payout), zap.String("management", management))

	address := ConfigAddress()
	config := &Config{
		PayoutAuthority:     payout,
		ManagementAuthority: management,
		UpgradeAuthority:    caller,
		RaffleCounter:       0,
	}

	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		data, err := encodeRecord(config)
		if err != nil {
			return err
		}
		if err := tx.Create(address, KindConfig, data); err != nil {
			if errors.Is(err, ledger.ErrExists) {
				return ErrConfigExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Debug("bootstrapping config... done", zap.String("config", address))
	return address, nil
}
