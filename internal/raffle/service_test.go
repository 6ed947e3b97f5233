package raffle

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"raffle/internal/ledger"
)

const (
	testManagement = "0:management"
	testPayout     = "0:payout"
	testUpgrade    = "0:upgrade"
	testPrice      = MinTicketPrice
)

var testStart = time.Unix(1_700_000_000, 0)

type captureNotifier struct {
	events []Event
}

func (n *captureNotifier) Notify(event Event) {
	n.events = append(n.events, event)
}

func newTestService(t *testing.T, reserve uint64) (*Service, *fixedClock, *ledger.SqliteLedger, *captureNotifier) {
	t.Helper()
	host := ledger.NewSqliteLedger(filepath.Join(t.TempDir(), "ledger.db"), reserve)
	clock := &fixedClock{now: testStart}
	notifier := &captureNotifier{}
	service := NewService(host, clock, fixedEntropy{entropyBytes(0xdeadbeef, 0xcafebabe)}, notifier)

	_, err := service.BootstrapConfig(context.Background(), testUpgrade, testPayout, testManagement)
	require.NoError(t, err)

	return service, clock, host, notifier
}

func u64ptr(v uint64) *uint64 { return &v }

func createOpenRaffle(t *testing.T, service *Service, minTickets uint64, maxTickets *uint64) ledger.Address {
	t.Helper()
	address, err := service.CreateRaffle(context.Background(), testManagement, CreateRaffleParams{
		MetadataURI: "https://example.com/raffle.json",
		TicketPrice: testPrice,
		EndTime:     testStart.Add(2 * time.Hour).Unix(),
		MinTickets:  minTickets,
		MaxTickets:  maxTickets,
	})
	require.NoError(t, err)
	return address
}

func openFundedBuyer(t *testing.T, service *Service, host *ledger.SqliteLedger, buyer ledger.Address, raffleAddress ledger.Address, funds uint64) {
	t.Helper()
	require.NoError(t, host.Fund(context.Background(), buyer, funds))
	_, err := service.OpenTicketBalance(context.Background(), buyer, raffleAddress)
	require.NoError(t, err)
}

func buyerSeed(n byte) [8]byte { return [8]byte{n} }

func walletBalance(t *testing.T, host *ledger.SqliteLedger, address ledger.Address) uint64 {
	t.Helper()
	var balance uint64
	err := host.Exec(context.Background(), func(tx ledger.Tx) error {
		var err error
		balance, err = tx.Balance(address)
		return err
	})
	require.NoError(t, err)
	return balance
}

func TestBootstrapConfigOnce(t *testing.T) {
	service, _, _, _ := newTestService(t, 0)

	_, err := service.BootstrapConfig(context.Background(), testUpgrade, testPayout, testManagement)
	require.ErrorIs(t, err, ErrConfigExists)
}

func TestCreateRaffleValidation(t *testing.T) {
	service, _, _, _ := newTestService(t, 0)
	ctx := context.Background()

	base := CreateRaffleParams{
		MetadataURI: "https://example.com/raffle.json",
		TicketPrice: testPrice,
		EndTime:     testStart.Add(2 * time.Hour).Unix(),
		MinTickets:  10,
	}

	cases := []struct {
		name   string
		mutate func(p *CreateRaffleParams)
		want   error
	}{
		{"bad uri scheme", func(p *CreateRaffleParams) { p.MetadataURI = "ftp://example.com" }, ErrInvalidMetadataURI},
		{"uri too long", func(p *CreateRaffleParams) {
			uri := "https://"
			for len(uri) <= MaxMetadataURILength {
				uri += "a"
			}
			p.MetadataURI = uri
		}, ErrMetadataURITooLong},
		{"price too low", func(p *CreateRaffleParams) { p.TicketPrice = MinTicketPrice - 1 }, ErrTicketPriceTooLow},
		{"price too high", func(p *CreateRaffleParams) { p.TicketPrice = MaxTicketPrice + 1 }, ErrTicketPriceTooHigh},
		{"min zero", func(p *CreateRaffleParams) { p.MinTickets = 0 }, ErrMinTicketsTooLow},
		{"min too high", func(p *CreateRaffleParams) { p.MinTickets = MaxMinTickets + 1 }, ErrMinTicketsTooHigh},
		{"max below min", func(p *CreateRaffleParams) { p.MaxTickets = u64ptr(9) }, ErrMaxTicketsTooLow},
		{"ends too soon", func(p *CreateRaffleParams) { p.EndTime = testStart.Add(time.Hour).Unix() }, ErrEndTimeTooClose},
		{"runs too long", func(p *CreateRaffleParams) { p.EndTime = testStart.Add(MaxDuration + time.Second).Unix() }, ErrDurationTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := base
			tc.mutate(&params)
			_, err := service.CreateRaffle(ctx, testManagement, params)
			require.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("ipfs uri accepted", func(t *testing.T) {
		params := base
		params.MetadataURI = "ipfs://QmExample"
		_, err := service.CreateRaffle(ctx, testManagement, params)
		require.NoError(t, err)
	})

	t.Run("max equal min accepted", func(t *testing.T) {
		params := base
		params.MaxTickets = u64ptr(10)
		_, err := service.CreateRaffle(ctx, testManagement, params)
		require.NoError(t, err)
	})
}

func TestCreateRaffleAuthority(t *testing.T) {
	service, _, _, _ := newTestService(t, 0)

	_, err := service.CreateRaffle(context.Background(), "0:intruder", CreateRaffleParams{
		MetadataURI: "https://example.com/raffle.json",
		TicketPrice: testPrice,
		EndTime:     testStart.Add(2 * time.Hour).Unix(),
		MinTickets:  10,
	})
	require.ErrorIs(t, err, ErrNotManagementAuthority)
}

func TestCreateRaffleAdvancesCounter(t *testing.T) {
	service, _, _, _ := newTestService(t, 0)

	first := createOpenRaffle(t, service, 10, nil)
	second := createOpenRaffle(t, service, 10, nil)
	require.NotEqual(t, first, second)

	require.Equal(t, RaffleAddress(0), first)
	require.Equal(t, RaffleAddress(1), second)
}

func TestOpenTicketBalanceOnce(t *testing.T) {
	service, _, _, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	_, err := service.OpenTicketBalance(ctx, "0:alice", raffleAddress)
	require.NoError(t, err)

	_, err = service.OpenTicketBalance(ctx, "0:alice", raffleAddress)
	require.ErrorIs(t, err, ErrTicketBalanceExists)
}

func TestBuyTicketsChecks(t *testing.T) {
	service, clock, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	t.Run("zero count", func(t *testing.T) {
		_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 0, buyerSeed(1))
		require.ErrorIs(t, err, ErrInvalidTicketCount)
	})

	t.Run("balance not opened", func(t *testing.T) {
		require.NoError(t, host.Fund(ctx, "0:bob", 100*testPrice))
		_, err := service.BuyTickets(ctx, "0:bob", raffleAddress, 1, buyerSeed(2))
		require.ErrorIs(t, err, ErrTicketBalanceNotInitialized)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		_, err := service.OpenTicketBalance(ctx, "0:poor", raffleAddress)
		require.NoError(t, err)

		// Exactly the payment is not enough: the balance must stay > 0.
		require.NoError(t, host.Fund(ctx, "0:poor", 2*testPrice))
		_, err = service.BuyTickets(ctx, "0:poor", raffleAddress, 2, buyerSeed(3))
		require.ErrorIs(t, err, ErrInsufficientFunds)

		require.NoError(t, host.Fund(ctx, "0:poor", 1))
		_, err = service.BuyTickets(ctx, "0:poor", raffleAddress, 2, buyerSeed(3))
		require.NoError(t, err)
	})

	t.Run("duplicate seed", func(t *testing.T) {
		openFundedBuyer(t, service, host, "0:carol", raffleAddress, 100*testPrice)
		_, err := service.BuyTickets(ctx, "0:carol", raffleAddress, 1, buyerSeed(9))
		require.NoError(t, err)
		_, err = service.BuyTickets(ctx, "0:carol", raffleAddress, 1, buyerSeed(9))
		require.ErrorIs(t, err, ErrEntryExists)
	})

	t.Run("after end time", func(t *testing.T) {
		clock.now = testStart.Add(3 * time.Hour)
		defer func() { clock.now = testStart }()
		_, err := service.BuyTickets(ctx, "0:carol", raffleAddress, 1, buyerSeed(10))
		require.ErrorIs(t, err, ErrRaffleEnded)
	})
}

func TestPurchaseMovesExactPayment(t *testing.T) {
	service, _, host, notifier := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	funds := 10*testPrice + 1
	openFundedBuyer(t, service, host, "0:alice", raffleAddress, funds)

	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 5, buyerSeed(1))
	require.NoError(t, err)

	require.Equal(t, funds-5*testPrice, walletBalance(t, host, "0:alice"))
	require.Equal(t, 5*testPrice, walletBalance(t, host, TreasuryAddress(raffleAddress)))

	var purchased *TicketsPurchased
	for _, event := range notifier.events {
		if p, ok := event.(TicketsPurchased); ok {
			purchased = &p
		}
	}
	require.NotNil(t, purchased)
	require.Equal(t, uint64(5), purchased.TicketCount)
	require.Equal(t, 5*testPrice, purchased.PaymentAmount)
	require.Equal(t, uint64(0), purchased.TicketStartIndex)
}

// Entries must tile [0, current_tickets) with no gaps or overlaps, and the
// sum of ticket balances must equal the raffle's ticket count.
func TestEntryRangesTile(t *testing.T) {
	service, _, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	buyers := []struct {
		address ledger.Address
		counts  []uint64
	}{
		{"0:alice", []uint64{5, 2}},
		{"0:bob", []uint64{6}},
		{"0:carol", []uint64{1, 1, 3}},
	}

	var seeds [][8]byte
	seedByte := byte(1)
	for _, buyer := range buyers {
		openFundedBuyer(t, service, host, buyer.address, raffleAddress, 1000*testPrice)
		for _, count := range buyer.counts {
			seed := buyerSeed(seedByte)
			seedByte++
			_, err := service.BuyTickets(ctx, buyer.address, raffleAddress, count, seed)
			require.NoError(t, err)
			seeds = append(seeds, seed)
		}
	}

	record, err := service.GetRaffle(ctx, raffleAddress)
	require.NoError(t, err)
	require.Equal(t, uint64(18), record.CurrentTickets)

	covered := make([]bool, record.CurrentTickets)
	for _, seed := range seeds {
		entry, err := service.GetEntry(ctx, raffleAddress, seed)
		require.NoError(t, err)
		for i := entry.TicketStartIndex; i < entry.TicketStartIndex+entry.TicketCount; i++ {
			require.False(t, covered[i], "ticket %d covered twice", i)
			covered[i] = true
		}
	}
	for i, seen := range covered {
		require.True(t, seen, "ticket %d uncovered", i)
	}

	var balanceSum uint64
	err = host.Exec(ctx, func(tx ledger.Tx) error {
		for _, buyer := range buyers {
			balance, err := getTicketBalance(tx, TicketBalanceAddress(raffleAddress, buyer.address))
			if err != nil {
				return err
			}
			balanceSum += balance.TicketCount
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, record.CurrentTickets, balanceSum)
}

// Scenario A: min=10, no max; buy 5 then 6 across two buyers, draw succeeds
// with an index in [0, 11), and the winner path runs through to Claimed.
func TestScenarioDrawAndClaim(t *testing.T) {
	service, clock, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	openFundedBuyer(t, service, host, "0:alice", raffleAddress, 100*testPrice)
	openFundedBuyer(t, service, host, "0:bob", raffleAddress, 100*testPrice)

	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 5, buyerSeed(1))
	require.NoError(t, err)
	_, err = service.BuyTickets(ctx, "0:bob", raffleAddress, 6, buyerSeed(2))
	require.NoError(t, err)

	// Too early to draw.
	_, err = service.DrawWinner(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotEnded)

	clock.now = testStart.Add(3 * time.Hour)

	winningTicket, err := service.DrawWinner(ctx, raffleAddress)
	require.NoError(t, err)
	require.Less(t, winningTicket, uint64(11))

	record, err := service.GetRaffle(ctx, raffleAddress)
	require.NoError(t, err)
	require.Equal(t, StateDrawing, record.State)
	require.NotNil(t, record.WinningTicket)

	// A second draw can never happen.
	_, err = service.DrawWinner(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotOpen)

	// Expiry is unreachable once drawing started.
	err = service.ExpireRaffle(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotOpen)

	winningSeed, losingSeed := buyerSeed(1), buyerSeed(2)
	expectedWinner := ledger.Address("0:alice")
	if winningTicket >= 5 {
		winningSeed, losingSeed = buyerSeed(2), buyerSeed(1)
		expectedWinner = "0:bob"
	}

	// Only the entry containing the index resolves the winner.
	_, err = service.SetWinner(ctx, raffleAddress, losingSeed)
	require.ErrorIs(t, err, ErrInvalidWinningEntry)

	winner, err := service.SetWinner(ctx, raffleAddress, winningSeed)
	require.NoError(t, err)
	require.Equal(t, expectedWinner, winner)

	record, err = service.GetRaffle(ctx, raffleAddress)
	require.NoError(t, err)
	require.Equal(t, StateDrawn, record.State)
	require.Equal(t, expectedWinner, *record.WinnerAddress)

	// Only the winner may submit, exactly once, with a bounded payload.
	err = service.SubmitWinnerData(ctx, "0:intruder", raffleAddress, []byte("contact"))
	require.ErrorIs(t, err, ErrNotWinner)

	err = service.SubmitWinnerData(ctx, winner, raffleAddress, nil)
	require.ErrorIs(t, err, ErrInvalidDataLength)

	err = service.SubmitWinnerData(ctx, winner, raffleAddress, make([]byte, MaxWinnerDataLength+1))
	require.ErrorIs(t, err, ErrInvalidDataLength)

	err = service.SubmitWinnerData(ctx, winner, raffleAddress, []byte("encrypted contact"))
	require.NoError(t, err)

	record, err = service.GetRaffle(ctx, raffleAddress)
	require.NoError(t, err)
	require.Equal(t, StateClaimed, record.State)

	err = service.SubmitWinnerData(ctx, winner, raffleAddress, []byte("again"))
	require.ErrorIs(t, err, ErrRaffleNotDrawn)
}

// Scenario B: min=10 with only 3 sold; the draw fails before and after the
// end time, expiry succeeds, and the draw path is then closed forever.
func TestScenarioExpiry(t *testing.T) {
	service, clock, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	openFundedBuyer(t, service, host, "0:alice", raffleAddress, 100*testPrice)
	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 3, buyerSeed(1))
	require.NoError(t, err)

	_, err = service.DrawWinner(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotEnded)

	err = service.ExpireRaffle(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotEnded)

	clock.now = testStart.Add(3 * time.Hour)

	_, err = service.DrawWinner(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrInsufficientTickets)

	require.NoError(t, service.ExpireRaffle(ctx, raffleAddress))

	record, err := service.GetRaffle(ctx, raffleAddress)
	require.NoError(t, err)
	require.Equal(t, StateExpired, record.State)

	_, err = service.DrawWinner(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotOpen)

	err = service.ExpireRaffle(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotOpen)
}

// At the exact end instant the draw path is reachable and expiry is not.
func TestEndTimeBoundary(t *testing.T) {
	service, clock, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 1, nil)
	ctx := context.Background()

	openFundedBuyer(t, service, host, "0:alice", raffleAddress, 100*testPrice)
	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 1, buyerSeed(1))
	require.NoError(t, err)

	clock.now = testStart.Add(2 * time.Hour)

	err = service.ExpireRaffle(ctx, raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotEnded)

	_, err = service.DrawWinner(ctx, raffleAddress)
	require.NoError(t, err)
}

// Scenario C: 5 tickets at price P refund exactly 5P, once.
func TestScenarioReclaim(t *testing.T) {
	service, clock, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	funds := 100 * testPrice
	openFundedBuyer(t, service, host, "0:alice", raffleAddress, funds)
	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 5, buyerSeed(1))
	require.NoError(t, err)

	// Reclaim before expiry is rejected.
	_, err = service.ReclaimTickets(ctx, "0:alice", raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotExpired)

	clock.now = testStart.Add(3 * time.Hour)
	require.NoError(t, service.ExpireRaffle(ctx, raffleAddress))

	refund, err := service.ReclaimTickets(ctx, "0:alice", raffleAddress)
	require.NoError(t, err)
	require.Equal(t, 5*testPrice, refund)
	require.Equal(t, funds, walletBalance(t, host, "0:alice"))

	// The balance record is gone; a second claim finds nothing.
	_, err = service.ReclaimTickets(ctx, "0:alice", raffleAddress)
	require.ErrorIs(t, err, ErrNoTicketsOwned)

	// A bystander with no tickets cannot reclaim either.
	_, err = service.ReclaimTickets(ctx, "0:bob", raffleAddress)
	require.ErrorIs(t, err, ErrNoTicketsOwned)
}

// A deposit landing on the balance record itself must come back to the owner
// when the record closes; no value on the ledger is destroyed by a reclaim.
func TestReclaimReturnsRecordResidual(t *testing.T) {
	service, clock, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	funds := 100 * testPrice
	openFundedBuyer(t, service, host, "0:alice", raffleAddress, funds)
	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 5, buyerSeed(1))
	require.NoError(t, err)

	balanceAddress := TicketBalanceAddress(raffleAddress, "0:alice")
	require.NoError(t, host.Fund(ctx, balanceAddress, 777))

	clock.now = testStart.Add(3 * time.Hour)
	require.NoError(t, service.ExpireRaffle(ctx, raffleAddress))

	refund, err := service.ReclaimTickets(ctx, "0:alice", raffleAddress)
	require.NoError(t, err)
	require.Equal(t, 5*testPrice, refund)

	// Full funds restored plus the stray deposit.
	require.Equal(t, funds+777, walletBalance(t, host, "0:alice"))
}

// Scenario D: cap rejections distinguish "would exceed" from "already full".
func TestScenarioTicketCap(t *testing.T) {
	service, _, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 5, u64ptr(10))
	ctx := context.Background()

	openFundedBuyer(t, service, host, "0:alice", raffleAddress, 1000*testPrice)

	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 8, buyerSeed(1))
	require.NoError(t, err)

	_, err = service.BuyTickets(ctx, "0:alice", raffleAddress, 5, buyerSeed(2))
	require.ErrorIs(t, err, ErrPurchaseExceedsThreshold)

	_, err = service.BuyTickets(ctx, "0:alice", raffleAddress, 2, buyerSeed(3))
	require.NoError(t, err)

	_, err = service.BuyTickets(ctx, "0:alice", raffleAddress, 1, buyerSeed(4))
	require.ErrorIs(t, err, ErrMaximumTicketsSold)

	// Cap reached: the draw is allowed before the end time.
	winningTicket, err := service.DrawWinner(ctx, raffleAddress)
	require.NoError(t, err)
	require.Less(t, winningTicket, uint64(10))
}

func TestWithdrawTreasury(t *testing.T) {
	const reserve = uint64(1000)
	service, clock, host, _ := newTestService(t, reserve)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	openFundedBuyer(t, service, host, "0:alice", raffleAddress, 100*testPrice)

	// Under-subscribed raffles cannot be drained.
	_, err := service.WithdrawTreasury(ctx, testManagement, raffleAddress)
	require.ErrorIs(t, err, ErrThresholdNotMet)

	_, err = service.BuyTickets(ctx, "0:alice", raffleAddress, 11, buyerSeed(1))
	require.NoError(t, err)

	_, err = service.WithdrawTreasury(ctx, "0:intruder", raffleAddress)
	require.ErrorIs(t, err, ErrNotManagementAuthority)

	clock.now = testStart.Add(3 * time.Hour)
	amount, err := service.WithdrawTreasury(ctx, testManagement, raffleAddress)
	require.NoError(t, err)
	require.Equal(t, 11*testPrice-reserve, amount)
	require.Equal(t, amount, walletBalance(t, host, testPayout))

	// Only the reserve floor remains.
	require.Equal(t, reserve, walletBalance(t, host, TreasuryAddress(raffleAddress)))

	_, err = service.WithdrawTreasury(ctx, testManagement, raffleAddress)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestSetWinnerRequiresDrawing(t *testing.T) {
	service, _, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 1, nil)
	ctx := context.Background()

	openFundedBuyer(t, service, host, "0:alice", raffleAddress, 100*testPrice)
	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 1, buyerSeed(1))
	require.NoError(t, err)

	_, err = service.SetWinner(ctx, raffleAddress, buyerSeed(1))
	require.ErrorIs(t, err, ErrRaffleNotDrawing)
}

func TestOpenTicketBalanceRequiresOpenState(t *testing.T) {
	service, clock, host, _ := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	openFundedBuyer(t, service, host, "0:alice", raffleAddress, 100*testPrice)
	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 3, buyerSeed(1))
	require.NoError(t, err)

	clock.now = testStart.Add(3 * time.Hour)
	require.NoError(t, service.ExpireRaffle(ctx, raffleAddress))

	_, err = service.OpenTicketBalance(ctx, "0:bob", raffleAddress)
	require.ErrorIs(t, err, ErrRaffleNotOpen)
}

func TestEventsEmittedOnCommitOnly(t *testing.T) {
	service, _, host, notifier := newTestService(t, 0)
	raffleAddress := createOpenRaffle(t, service, 10, nil)
	ctx := context.Background()

	created := len(notifier.events)
	require.Greater(t, created, 0)
	require.Equal(t, "raffle_created", notifier.events[created-1].EventName())

	// A failed purchase emits nothing.
	openFundedBuyer(t, service, host, "0:alice", raffleAddress, 1)
	_, err := service.BuyTickets(ctx, "0:alice", raffleAddress, 1, buyerSeed(1))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Len(t, notifier.events, created)
}
