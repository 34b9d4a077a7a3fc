package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile holds per-user ledger settings. One row per user, created
// lazily on first dashboard load.
type Profile struct {
	ID               string          `db:"id"`
	StartingBankroll decimal.Decimal `db:"starting_bankroll"`
	UnitSize         decimal.Decimal `db:"unit_size"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}
