package raffle

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"raffle/internal/ledger"
)

// Record kinds as stored on the ledger.
const (
	KindConfig        = "config"
	KindRaffle        = "raffle"
	KindTreasury      = "treasury"
	KindEntry         = "entry"
	KindTicketBalance = "ticket_balance"
	KindWinnerData    = "winner_data"
)

// State is the raffle lifecycle position. Transitions are strictly
// one-directional: Open -> Drawing -> Drawn -> Claimed, with Expired as an
// alternate terminal reachable only from Open.
type State uint8

const (
	StateOpen State = iota
	StateDrawing
	StateDrawn
	StateExpired
	StateClaimed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateDrawing:
		return "drawing"
	case StateDrawn:
		return "drawn"
	case StateExpired:
		return "expired"
	case StateClaimed:
		return "claimed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Config is the process-wide singleton holding the three authority
// identities and the monotonically increasing raffle counter.
type Config struct {
	PayoutAuthority     ledger.Address `json:"payout_authority"`
	ManagementAuthority ledger.Address `json:"management_authority"`
	UpgradeAuthority    ledger.Address `json:"upgrade_authority"`
	RaffleCounter       uint64         `json:"raffle_counter"`
}

// Raffle is the state machine record. Times are unix seconds; MaxTickets,
// WinnerAddress and WinningTicket are absent until set, never sentinel
// values.
type Raffle struct {
	Treasury       ledger.Address  `json:"treasury"`
	MetadataURI    string          `json:"metadata_uri"`
	TicketPrice    uint64          `json:"ticket_price"`
	CurrentTickets uint64          `json:"current_tickets"`
	MinTickets     uint64          `json:"min_tickets"`
	MaxTickets     *uint64         `json:"max_tickets,omitempty"`
	CreationTime   int64           `json:"creation_time"`
	EndTime        int64           `json:"end_time"`
	State          State           `json:"state"`
	WinnerAddress  *ledger.Address `json:"winner_address,omitempty"`
	WinningTicket  *uint64         `json:"winning_ticket,omitempty"`
}

// Treasury is a pure value holder linked back to its raffle.
type Treasury struct {
	Raffle ledger.Address `json:"raffle"`
}

// Entry records one purchase transaction and the contiguous ticket range
// [TicketStartIndex, TicketStartIndex+TicketCount) it was assigned. Entries
// are immutable and never deleted; they prove winner membership.
type Entry struct {
	Raffle           ledger.Address `json:"raffle"`
	Owner            ledger.Address `json:"owner"`
	TicketCount      uint64         `json:"ticket_count"`
	TicketStartIndex uint64         `json:"ticket_start_index"`
	Seed             [8]byte        `json:"seed"`
}

// TicketBalance aggregates one buyer's tickets for one raffle; it exists to
// make refunds a single lookup and is deleted when the refund is claimed.
type TicketBalance struct {
	Owner       ledger.Address `json:"owner"`
	TicketCount uint64         `json:"ticket_count"`
}

// WinnerData holds the winner's submitted payload.
type WinnerData struct {
	Data []byte `json:"data"`
}

func ConfigAddress() ledger.Address {
	return ledger.Derive(KindConfig, "", nil)
}

func RaffleAddress(counter uint64) ledger.Address {
	salt := make([]byte, 8)
	binary.LittleEndian.PutUint64(salt, counter)
	return ledger.Derive(KindRaffle, ConfigAddress(), salt)
}

func TreasuryAddress(raffle ledger.Address) ledger.Address {
	return ledger.Derive(KindTreasury, raffle, nil)
}

func EntryAddress(raffle ledger.Address, seed [8]byte) ledger.Address {
	return ledger.Derive(KindEntry, raffle, seed[:])
}

func TicketBalanceAddress(raffle, owner ledger.Address) ledger.Address {
	return ledger.Derive(KindTicketBalance, raffle, []byte(owner))
}

func WinnerDataAddress(raffle, winner ledger.Address) ledger.Address {
	return ledger.Derive(KindWinnerData, raffle, []byte(winner))
}

func encodeRecord(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
