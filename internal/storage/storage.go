package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transcript is a finished dialogue persisted for diagnosis: the
// rendered request, the full utterance transcript and the final goal
// result.
type Transcript struct {
	ID        uuid.UUID `json:"id"`
	Request   string    `json:"request"`
	Result    int       `json:"result"`
	Lines     []string  `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

// Storage persists dialogue transcripts.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error
	SaveTranscript(ctx context.Context, t *Transcript) error
	LoadTranscript(ctx context.Context, id uuid.UUID) (*Transcript, error)
}
