package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// ScenarioStep is one pool operation to replay.
type ScenarioStep struct {
	Op     string `json:"op"`
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

// Scenario is an ordered list of operations against a single pool.
type Scenario struct {
	Name       string         `json:"name"`
	Operations []ScenarioStep `json:"operations"`
}

// LoadScenario reads a scenario from a JSON file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	return sc, nil
}
