package ledger

// Account is one addressable record on the ledger. Wallet accounts carry only
// a balance; program accounts additionally carry the record blob written by
// the raffle program.
type Account struct {
	Address string `gorm:"primaryKey"`
	Kind    string `gorm:"not null"`
	Balance uint64 `gorm:"not null;default:0"`
	Data    []byte
}

// KindWallet is the kind assigned to externally funded accounts.
const KindWallet = "wallet"
