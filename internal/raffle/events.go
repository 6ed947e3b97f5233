package raffle

import (
	"go.uber.org/zap"

	"raffle/internal/ledger"
	"raffle/internal/logger"
)

// Event is an advisory notification emitted after an operation commits.
// Observers may consume them; correctness never depends on delivery.
type Event interface {
	EventName() string
}

// Notifier receives events from committed operations.
type Notifier interface {
	Notify(event Event)
}

type RaffleCreated struct {
	Raffle       ledger.Address `json:"raffle"`
	MetadataURI  string         `json:"metadata_uri"`
	TicketPrice  uint64         `json:"ticket_price"`
	MinTickets   uint64         `json:"min_tickets"`
	EndTime      int64          `json:"end_time"`
	CreationTime int64          `json:"creation_time"`
}

func (RaffleCreated) EventName() string { return "raffle_created" }

type TicketsPurchased struct {
	Raffle           ledger.Address `json:"raffle"`
	Buyer            ledger.Address `json:"buyer"`
	TicketCount      uint64         `json:"ticket_count"`
	PaymentAmount    uint64         `json:"payment_amount"`
	TicketStartIndex uint64         `json:"ticket_start_index"`
	EntrySeed        [8]byte        `json:"entry_seed"`
}

func (TicketsPurchased) EventName() string { return "tickets_purchased" }

type WinningTicketDrawn struct {
	Raffle        ledger.Address `json:"raffle"`
	WinningTicket uint64         `json:"winning_ticket"`
}

func (WinningTicketDrawn) EventName() string { return "winning_ticket_drawn" }

type WinnerSet struct {
	Raffle        ledger.Address `json:"raffle"`
	Winner        ledger.Address `json:"winner"`
	WinningTicket uint64         `json:"winning_ticket"`
}

func (WinnerSet) EventName() string { return "winner_set" }

type RaffleExpired struct {
	Raffle           ledger.Address `json:"raffle"`
	ExpiredAt        int64          `json:"expired_at"`
	FinalTicketCount uint64         `json:"final_ticket_count"`
}

func (RaffleExpired) EventName() string { return "raffle_expired" }

type TicketsReclaimed struct {
	Raffle       ledger.Address `json:"raffle"`
	Owner        ledger.Address `json:"owner"`
	TicketCount  uint64         `json:"ticket_count"`
	RefundAmount uint64         `json:"refund_amount"`
}

func (TicketsReclaimed) EventName() string { return "tickets_reclaimed" }

type TreasuryWithdrawn struct {
	Raffle ledger.Address `json:"raffle"`
	Amount uint64         `json:"amount"`
}

func (TreasuryWithdrawn) EventName() string { return "treasury_withdrawn" }

type WinnerDataSubmitted struct {
	Raffle ledger.Address `json:"raffle"`
}

func (WinnerDataSubmitted) EventName() string { return "winner_data_submitted" }

// LogNotifier writes events to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(event Event) {
	logger.Info("event", zap.String("event", event.EventName()), zap.Any("payload", event))
}
