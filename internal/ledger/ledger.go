package ledger

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("ledger: account not found")
	ErrExists              = errors.New("ledger: account already exists")
	ErrWrongKind           = errors.New("ledger: account kind mismatch")
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrBalanceOverflow     = errors.New("ledger: balance overflow")
)

// Ledger is the host platform the raffle program runs on. It stores
// addressable accounts, each carrying a balance in the currency's smallest
// unit plus an opaque data blob, and executes one request at a time
// atomically against the accounts it touches.
type Ledger interface {
	// Exec runs fn as a single atomic unit: every account read or written
	// inside fn commits together, or the whole operation rolls back with no
	// partial effect when fn returns an error.
	Exec(ctx context.Context, fn func(tx Tx) error) error

	// Fund creates or credits a wallet account from outside the program.
	// It stands in for external deposits onto the platform.
	Fund(ctx context.Context, address Address, amount uint64) error
}

// Tx is the view of the ledger inside one atomic execution.
type Tx interface {
	Create(address Address, kind string, data []byte) error
	Get(address Address, kind string) (*Account, error)
	Update(address Address, data []byte) error

	// Delete closes the account: any balance it still holds moves to
	// recipient before the record is removed, so closing never destroys
	// value.
	Delete(address, recipient Address) error

	Balance(address Address) (uint64, error)
	Transfer(from, to Address, amount uint64) error

	// Reserve is the platform-mandated balance floor an account must keep
	// while it exists.
	Reserve() uint64
}

// Clock is the host time capability.
type Clock interface {
	Now() time.Time
}

// Entropy is the host randomness capability. Recent returns an opaque byte
// sequence derived from recent platform activity; callers must not assume
// anything about it beyond unpredictability.
type Entropy interface {
	Recent() ([]byte, error)
}
