package world

import "testing"

func TestTransactionLogRevertOrder(t *testing.T) {
	log := NewTransactionLog()
	var undone []string

	cp := log.Mark()
	log.Push(func() { undone = append(undone, "first") })
	log.Push(func() { undone = append(undone, "second") })
	log.Push(func() { undone = append(undone, "third") })

	if log.Len() != 3 {
		t.Fatalf("Expected log length 3, got %d", log.Len())
	}

	log.RevertTo(cp)

	if len(undone) != 3 {
		t.Fatalf("Expected 3 undo records to run, got %d", len(undone))
	}
	// Newest first.
	if undone[0] != "third" || undone[1] != "second" || undone[2] != "first" {
		t.Errorf("Undo records ran out of order: %v", undone)
	}
	if log.Len() != 0 {
		t.Errorf("Expected empty log after revert, got length %d", log.Len())
	}
}

func TestTransactionLogPartialRevert(t *testing.T) {
	log := NewTransactionLog()
	count := 0

	log.Push(func() { count++ })
	cp := log.Mark()
	log.Push(func() { count++ })
	log.Push(func() { count++ })

	log.RevertTo(cp)

	if count != 2 {
		t.Errorf("Expected 2 undo records to run, got %d", count)
	}
	if log.Len() != 1 {
		t.Errorf("Expected log length 1 after partial revert, got %d", log.Len())
	}
}

func TestTransactionLogFlushKeepsAbsoluteLength(t *testing.T) {
	log := NewTransactionLog()
	log.Push(func() {})
	log.Push(func() {})

	log.Flush()

	if log.Len() != 2 {
		t.Errorf("Expected absolute length 2 after flush, got %d", log.Len())
	}

	cp := log.Mark()
	ran := false
	log.Push(func() { ran = true })
	log.RevertTo(cp)

	if !ran {
		t.Error("Expected post-flush record to be undone")
	}
}

func TestTransactionLogRevertToFlushedPanics(t *testing.T) {
	log := NewTransactionLog()
	cp := log.Mark()
	log.Push(func() {})
	log.Flush()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic reverting to a flushed checkpoint")
		}
	}()
	log.RevertTo(cp)
}

func TestTransactionLogRevertBeyondLengthPanics(t *testing.T) {
	log := NewTransactionLog()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic reverting to a future checkpoint")
		}
	}()
	log.RevertTo(Checkpoint(5))
}
