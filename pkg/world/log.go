package world

import "fmt"

// Checkpoint marks a position in a TransactionLog. It is only
// meaningful for the log that produced it.
type Checkpoint int

// TransactionLog is an ordered log of undo records. Every committed
// mutation appends exactly one record; reverting to a checkpoint
// replays records in reverse order and truncates the log.
type TransactionLog struct {
	records []func()
	base    int // records discarded by Flush
}

func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

// Len returns the absolute length of the log, counting flushed records.
func (l *TransactionLog) Len() int {
	return l.base + len(l.records)
}

// Mark returns a checkpoint for the current log position.
func (l *TransactionLog) Mark() Checkpoint {
	return Checkpoint(l.Len())
}

// Push appends one undo record.
func (l *TransactionLog) Push(undo func()) {
	l.records = append(l.records, undo)
}

// RevertTo undoes every record after cp, newest first, and truncates
// the log back to cp. A checkpoint from another log, from the future,
// or from before the last flush is a programming error.
func (l *TransactionLog) RevertTo(cp Checkpoint) {
	n := int(cp)
	if n > l.Len() {
		panic(fmt.Sprintf("world: revert to checkpoint %d beyond log length %d", n, l.Len()))
	}
	if n < l.base {
		panic(fmt.Sprintf("world: revert to checkpoint %d before flushed base %d", n, l.base))
	}
	for i := len(l.records) - 1; i >= n-l.base; i-- {
		l.records[i]()
	}
	l.records = l.records[:n-l.base]
}

// Flush discards all records to reclaim memory. Checkpoints taken
// before the flush can no longer be reverted to.
func (l *TransactionLog) Flush() {
	l.base += len(l.records)
	l.records = l.records[:0]
}
