package ledger

import (
	"crypto/sha256"
	"fmt"
)

// Address is an account address in the platform's raw form: "0:" followed by
// the hex digest of the derivation inputs.
type Address = string

// Derive computes the deterministic sub-address for (kind, parent, salt).
// The program only relies on the result being unique per input triple and
// recomputable for lookup; the digest itself carries no meaning.
func Derive(kind string, parent Address, salt []byte) Address {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(parent))
	h.Write([]byte{0})
	h.Write(salt)
	return fmt.Sprintf("0:%x", h.Sum(nil))
}
