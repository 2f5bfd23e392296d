package model

import (
	"encoding/json"
)

// Operation kinds accepted by a scenario.
const (
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpSwap     = "swap"
)

// OperationRecord is the journal entry written for every executed pool operation.
type OperationRecord struct {
	RunID       string `json:"run_id"`
	Seq         uint64 `json:"seq"`
	Op          string `json:"op"`
	Token       string `json:"token"`
	Amount      string `json:"amount"`
	Result      string `json:"result,omitempty"`
	Utility     string `json:"utility,omitempty"`
	BalanceX    string `json:"balance_x"`
	BalanceY    string `json:"balance_y"`
	TotalSupply string `json:"total_supply"`
	Error       string `json:"error,omitempty"`
	ExecutedAt  string `json:"executed_at"`
}

// MarshalJSON ensures OperationRecord is encoded with stable field names.
func (r OperationRecord) MarshalJSON() ([]byte, error) {
	type Alias OperationRecord
	return json.Marshal(Alias(r))
}

// UnmarshalJSON decodes an OperationRecord from JSON.
func (r *OperationRecord) UnmarshalJSON(data []byte) error {
	type Alias OperationRecord
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = OperationRecord(a)
	return nil
}

// Failed reports whether the operation was rejected.
func (r OperationRecord) Failed() bool {
	return r.Error != ""
}
