package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOperationRecordJSONRoundTrip(t *testing.T) {
	original := OperationRecord{
		RunID:       "run-1",
		Seq:         3,
		Op:          OpSwap,
		Token:       "X",
		Amount:      "100",
		Result:      "99.175799415702606132527226529",
		Utility:     "1000",
		BalanceX:    "1100",
		BalanceY:    "900.824200584297393867472773471",
		TotalSupply: "2000",
		ExecutedAt:  "2024-01-01T00:00:00Z",
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded OperationRecord
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
	if decoded.Failed() {
		t.Fatalf("record should not be failed")
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	data := `{"name":"demo","operations":[{"op":"swap","token":"x","amount":"100"},{"op":"withdraw","token":"y","amount":"5"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	want := Scenario{
		Name: "demo",
		Operations: []ScenarioStep{
			{Op: OpSwap, Token: "x", Amount: "100"},
			{Op: OpWithdraw, Token: "y", Amount: "5"},
		},
	}
	if !reflect.DeepEqual(sc, want) {
		t.Fatalf("scenario mismatch: %+v != %+v", sc, want)
	}

	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
