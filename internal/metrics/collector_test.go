package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestRecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpDeleteIndex, 20*time.Millisecond)
	c.RecordTiming(OpDeleteIndex, 40*time.Millisecond)

	snap := c.Snapshot()
	op, ok := snap.Operations[OpDeleteIndex]
	if !ok {
		t.Fatalf("expected %s in snapshot", OpDeleteIndex)
	}
	if op.Count != 2 {
		t.Errorf("Count = %d, want 2", op.Count)
	}
	if op.TotalTimeMs != 60 {
		t.Errorf("TotalTimeMs = %d, want 60", op.TotalTimeMs)
	}
	if op.MinTimeMs != 20 || op.MaxTimeMs != 40 {
		t.Errorf("Min/Max = %d/%d, want 20/40", op.MinTimeMs, op.MaxTimeMs)
	}
}

func TestRecordItems(t *testing.T) {
	c := NewCollector()
	c.RecordItems(OpBulkIndex, 100*time.Millisecond, 42)

	op := c.Snapshot().Operations[OpBulkIndex]
	if op.TotalItems != 42 {
		t.Errorf("TotalItems = %d, want 42", op.TotalItems)
	}
}

func TestTime(t *testing.T) {
	c := NewCollector()
	stop := c.Time(OpReadList)
	stop()

	if got := c.Snapshot().Operations[OpReadList].Count; got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestSnapshotSkipsEmptyOps(t *testing.T) {
	c := NewCollector()
	if n := len(c.Snapshot().Operations); n != 0 {
		t.Errorf("expected empty snapshot, got %d operations", n)
	}
}

func TestSnapshotString(t *testing.T) {
	c := NewCollector()
	c.RecordItems(OpBulkIndex, 100*time.Millisecond, 7)
	c.RecordTiming(OpResolveEnv, 30*time.Millisecond)

	out := c.Snapshot().String()
	if !strings.Contains(out, OpBulkIndex) || !strings.Contains(out, "items=7") {
		t.Errorf("unexpected snapshot rendering:\n%s", out)
	}
	// Stable order: bulk_index before resolve_env.
	if strings.Index(out, OpBulkIndex) > strings.Index(out, OpResolveEnv) {
		t.Errorf("operations not sorted:\n%s", out)
	}
}
