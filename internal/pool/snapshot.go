package pool

import (
	"fmt"

	"github.com/shopspring/decimal"

	"conicPool/internal/numeric"
)

// Snapshot is a point-in-time copy of a pool's reserves and LP supply.
type Snapshot struct {
	X           decimal.Decimal `json:"x"`
	Y           decimal.Decimal `json:"y"`
	TotalSupply decimal.Decimal `json:"total_supply"`
}

// String prints the balances truncated to the comparison quantum.
func (s Snapshot) String() string {
	return fmt.Sprintf("%s X\n%s Y\n%s LP tokens",
		numeric.Truncate(s.X).StringFixed(numeric.Quantum),
		numeric.Truncate(s.Y).StringFixed(numeric.Quantum),
		numeric.Truncate(s.TotalSupply).StringFixed(numeric.Quantum),
	)
}
