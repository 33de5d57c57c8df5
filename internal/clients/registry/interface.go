package registry

//go:generate mockgen -destination=mock/mock_client.go -package=mockregistry . Client

import (
	"context"

	"github.com/KirkDiggler/charform/internal/domain/character"
)

// Client exchanges a character record with the remote registry.
// Calls are fire-once: no retry, no rollback, and the caller's record is never modified.
type Client interface {
	// Register sends the record and optional image for storage.
	Register(ctx context.Context, rec character.Record, img *character.Image) (*Ack, error)

	// AssistGenerate asks the generation endpoint to fill the record and returns
	// the remote fields overlaid onto rec's identity fields.
	AssistGenerate(ctx context.Context, rec character.Record, img *character.Image) (character.Record, error)
}

// Ack is a successful registration acknowledgement
type Ack struct {
	StatusCode int
	RequestID  string
	Body       []byte
}
