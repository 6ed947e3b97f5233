package raffle

import "time"

const MaxTicketPrice uint64 = 100_000_000_000
const MinTicketPrice uint64 = 100_000_000
const MaxMinTickets uint64 = 1_000_000
const MaxDuration = 30 * 24 * time.Hour
const MinDuration = 1 * time.Hour
const MaxMetadataURILength = 256
const MaxWinnerDataLength = 854

// drawAttempts caps rejection sampling in the draw engine. Each extra round
// costs execution resources on the host, so the cap trades a vanishing
// residual bias for a hard cost ceiling.
const drawAttempts = 3

var validURIPrefixes = []string{
	"https://",
	"ipfs://",
	"ipfs://ipfs/",
}
