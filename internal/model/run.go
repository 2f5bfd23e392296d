package model

import "time"

// Run summarizes one scenario replay for storage.
type Run struct {
	RunID        string
	Scenario     string
	Coefficients []string
	FeeX         string
	FeeY         string
	BalanceX     string
	BalanceY     string
	TotalSupply  string
	Operations   uint64
	Failures     uint64
	StartedAt    time.Time
	FinishedAt   time.Time
}
