package ledger

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"raffle/internal/logger"
)

// SqliteLedger implements Ledger on a local sqlite database. Atomicity of
// Exec comes from running the closure inside one sqlite transaction.
type SqliteLedger struct {
	db      *gorm.DB
	reserve uint64
}

func NewSqliteLedger(path string, reserve uint64) *SqliteLedger {

	logger.Debug("initializing ledger database...")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&Account{},
	)

	if err != nil {
		panic(err)
	}

	return &SqliteLedger{
		db:      db,
		reserve: reserve,
	}
}

func (l *SqliteLedger) Exec(ctx context.Context, fn func(tx Tx) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&sqliteTx{db: tx, reserve: l.reserve})
	})
}

func (l *SqliteLedger) Fund(ctx context.Context, address Address, amount uint64) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account Account
		err := tx.Where("address = ?", address).First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&Account{
				Address: address,
				Kind:    KindWallet,
				Balance: amount,
			}).Error
		}
		if err != nil {
			return err
		}
		if account.Balance+amount < account.Balance {
			return ErrBalanceOverflow
		}
		account.Balance += amount
		return tx.Save(&account).Error
	})
}

type sqliteTx struct {
	db      *gorm.DB
	reserve uint64
}

func (t *sqliteTx) Create(address Address, kind string, data []byte) error {

	var existing Account
	err := t.db.Where("address = ?", address).First(&existing).Error
	if err == nil {
		return ErrExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return t.db.Create(&Account{
		Address: address,
		Kind:    kind,
		Data:    data,
	}).Error
}

func (t *sqliteTx) Get(address Address, kind string) (*Account, error) {

	var account Account
	err := t.db.Where("address = ?", address).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if account.Kind != kind {
		return nil, ErrWrongKind
	}

	return &account, nil
}

func (t *sqliteTx) Update(address Address, data []byte) error {

	result := t.db.Model(&Account{}).Where("address = ?", address).Update("data", data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (t *sqliteTx) Delete(address, recipient Address) error {

	var account Account
	err := t.db.Where("address = ?", address).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// External credits can land on any account, records included; closing
	// returns them instead of burning them.
	if account.Balance > 0 {
		if err := t.Transfer(address, recipient, account.Balance); err != nil {
			return err
		}
	}

	result := t.db.Where("address = ?", address).Delete(&Account{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (t *sqliteTx) Balance(address Address) (uint64, error) {

	var account Account
	err := t.db.Where("address = ?", address).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

func (t *sqliteTx) Transfer(from, to Address, amount uint64) error {

	var source Account
	err := t.db.Where("address = ?", from).First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// Wallet destinations spring into existence on first credit, the way
	// system accounts do on the platform.
	var destination Account
	err = t.db.Where("address = ?", to).First(&destination).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		destination = Account{Address: to, Kind: KindWallet}
		if err := t.db.Create(&destination).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if source.Balance < amount {
		return ErrInsufficientBalance
	}
	if destination.Balance+amount < destination.Balance {
		return ErrBalanceOverflow
	}

	source.Balance -= amount
	destination.Balance += amount

	if err := t.db.Save(&source).Error; err != nil {
		return err
	}
	return t.db.Save(&destination).Error
}

func (t *sqliteTx) Reserve() uint64 {
	return t.reserve
}
