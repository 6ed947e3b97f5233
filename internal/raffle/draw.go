package raffle

import (
	"encoding/binary"
	"fmt"
	"math"

	"raffle/internal/ledger"
)

// DrawEngine maps host entropy to an unbiased ticket index. It keeps no
// state of its own; every draw reads fresh entropy and the current time.
type DrawEngine struct {
	clock   ledger.Clock
	entropy ledger.Entropy
}

func NewDrawEngine(clock ledger.Clock, entropy ledger.Entropy) *DrawEngine {
	return &DrawEngine{clock: clock, entropy: entropy}
}

// Draw picks an index in [0, n). It derives two 64-bit words from the
// entropy source (reusing the first when the source is short), mixes the
// first with the current timestamp and then with the second, and maps the
// result into range without modulo bias.
func (e *DrawEngine) Draw(n uint64) (uint64, error) {
	if n == 0 {
		return 0, ErrOverflow
	}

	raw, err := e.entropy.Recent()
	if err != nil {
		return 0, fmt.Errorf("reading entropy: %w", err)
	}
	if len(raw) < 8 {
		return 0, ErrInvalidEntropy
	}

	word1 := binary.LittleEndian.Uint64(raw[:8])
	word2 := word1
	if len(raw) >= 16 {
		word2 = binary.LittleEndian.Uint64(raw[8:16])
	}

	timestamp := uint64(e.clock.Now().Unix())

	// Two independent entropy channels resist manipulation of either one.
	mixed := mix(word1, timestamp)
	mixed = mix(mixed, word2)

	return unbiasedRange(mixed, n)
}

// mix is a splitmix64-style avalanche function: flipping any input bit flips
// each output bit with ~50% probability. Wraparound is intentional here; this
// is bit diffusion, not accounting.
func mix(a, b uint64) uint64 {
	z := a + b
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// unbiasedRange maps x into [0, n). Power-of-two ranges use an exact mask;
// ranges up to 256 use plain modulo (bias bounded by 256/2^64); larger ranges
// use rejection sampling capped at drawAttempts, falling back to modulo with
// a minimal residual bias once the cap is exhausted.
func unbiasedRange(x, n uint64) (uint64, error) {
	if n == 0 {
		return 0, ErrOverflow
	}

	if n&(n-1) == 0 {
		return x & (n - 1), nil
	}

	if n <= 256 {
		return x % n, nil
	}

	threshold := uint64(math.MaxUint64) - (uint64(math.MaxUint64) % n)

	value := x
	for i := uint64(0); i < drawAttempts; i++ {
		if value < threshold {
			return value % n, nil
		}
		value = mix(value, value+i+1)
	}

	return value % n, nil
}
