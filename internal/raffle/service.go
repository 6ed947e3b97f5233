package raffle

import (
	"context"
	"errors"
	"fmt"

	"raffle/internal/ledger"
)

// Service executes the raffle program's operations against the host ledger.
// Every public operation runs as one atomic ledger execution: all
// preconditions are re-validated inside the execution against the
// authoritative records, never against a client-side snapshot, and any error
// rolls the whole operation back.
type Service struct {
	ledger   ledger.Ledger
	clock    ledger.Clock
	engine   *DrawEngine
	notifier Notifier
}

func NewService(host ledger.Ledger, clock ledger.Clock, entropy ledger.Entropy, notifier Notifier) *Service {
	return &Service{
		ledger:   host,
		clock:    clock,
		engine:   NewDrawEngine(clock, entropy),
		notifier: notifier,
	}
}

// emit delivers an event after the operation committed. Events from rolled
// back operations are never delivered.
func (s *Service) emit(event Event) {
	if s.notifier != nil {
		s.notifier.Notify(event)
	}
}

func getConfig(tx ledger.Tx) (*Config, error) {
	account, err := tx.Get(ConfigAddress(), KindConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	config := &Config{}
	if err := decodeRecord(account.Data, config); err != nil {
		return nil, err
	}
	return config, nil
}

func getRaffle(tx ledger.Tx, address ledger.Address) (*Raffle, error) {
	account, err := tx.Get(address, KindRaffle)
	if err != nil {
		return nil, fmt.Errorf("loading raffle %s: %w", address, err)
	}
	raffle := &Raffle{}
	if err := decodeRecord(account.Data, raffle); err != nil {
		return nil, err
	}
	return raffle, nil
}

func putRaffle(tx ledger.Tx, address ledger.Address, raffle *Raffle) error {
	data, err := encodeRecord(raffle)
	if err != nil {
		return err
	}
	return tx.Update(address, data)
}

func getTicketBalance(tx ledger.Tx, address ledger.Address) (*TicketBalance, error) {
	account, err := tx.Get(address, KindTicketBalance)
	if err != nil {
		return nil, err
	}
	balance := &TicketBalance{}
	if err := decodeRecord(account.Data, balance); err != nil {
		return nil, err
	}
	return balance, nil
}

func getEntry(tx ledger.Tx, address ledger.Address) (*Entry, error) {
	account, err := tx.Get(address, KindEntry)
	if err != nil {
		return nil, err
	}
	entry := &Entry{}
	if err := decodeRecord(account.Data, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetRaffle reads a raffle record. Read-only; exposed for the HTTP surface.
func (s *Service) GetRaffle(ctx context.Context, address ledger.Address) (*Raffle, error) {
	var raffle *Raffle
	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		var err error
		raffle, err = getRaffle(tx, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	return raffle, nil
}

// GetEntry reads an entry record by its purchase seed.
func (s *Service) GetEntry(ctx context.Context, raffleAddress ledger.Address, seed [8]byte) (*Entry, error) {
	var entry *Entry
	err := s.ledger.Exec(ctx, func(tx ledger.Tx) error {
		var err error
		entry, err = getEntry(tx, EntryAddress(raffleAddress, seed))
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// IsNotFound reports whether err means a referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ledger.ErrNotFound)
}
