package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"conicPool/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ops.jsonl")
	sink := NewJsonlStorage(path)

	first := []model.OperationRecord{{RunID: "r", Seq: 1, Op: model.OpSwap, Amount: "1"}}
	second := []model.OperationRecord{
		{RunID: "r", Seq: 2, Op: model.OpDeposit, Amount: "2"},
		{RunID: "r", Seq: 3, Op: model.OpWithdraw, Amount: "3", Error: "withdraw amount exceeds maximum"},
	}
	if err := sink.PutOperationBatch(context.Background(), first); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if err := sink.PutOperationBatch(context.Background(), second); err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if err := sink.PutOperationBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	var seqs []uint64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec model.OperationRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		seqs = append(seqs, rec.Seq)
	}
	if len(seqs) != 3 || seqs[0] != 1 || seqs[2] != 3 {
		t.Fatalf("unexpected records: %v", seqs)
	}
}

type countingSink struct {
	batches int
	err     error
}

func (c *countingSink) PutOperationBatch(context.Context, []model.OperationRecord) error {
	c.batches++
	return c.err
}

func TestMultiStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &countingSink{}
	b := &countingSink{err: boom}
	c := &countingSink{}

	err := Multi{a, nil, b, c}.PutOperationBatch(context.Background(), []model.OperationRecord{{Seq: 1}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if a.batches != 1 || b.batches != 1 || c.batches != 0 {
		t.Fatalf("unexpected batch counts: %d %d %d", a.batches, b.batches, c.batches)
	}
}
