package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Counter names and seeds for the display-ID sequences. The first allocated
// value is seed+1; counter rows are created lazily and never deleted.
const (
	CounterUserID    = "user-id"
	CounterProductID = "product-id"
	CounterOrderID   = "order-id"

	SeedUserID    = 2000
	SeedProductID = 19999
	SeedOrderID   = 2000
)

// nextCounterValue atomically increments the named counter and returns the
// new value, seeding the row on first use. The single INSERT ... ON DUPLICATE
// KEY UPDATE with LAST_INSERT_ID(expr) is MySQL's sequence-table idiom: two
// concurrent callers can never observe the same value. Running it on the same
// transaction as the entity insert ties the allocation to the entity's fate.
func nextCounterValue(tx *sqlx.Tx, name string, seed int64) (int64, error) {
	res, err := tx.Exec(
		`INSERT INTO counters (name, count) VALUES (?, LAST_INSERT_ID(? + 1))
		 ON DUPLICATE KEY UPDATE count = LAST_INSERT_ID(count + 1)`,
		name, seed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}

	value, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", name, err)
	}
	return value, nil
}
