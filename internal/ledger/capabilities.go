package ledger

import (
	"crypto/rand"
	"time"
)

// SystemClock reads the host wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// SystemEntropy draws recent entropy from the operating system. The raffle
// program treats the bytes as an opaque sequence, so the source only needs to
// be unpredictable to callers.
type SystemEntropy struct{}

func (SystemEntropy) Recent() ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
