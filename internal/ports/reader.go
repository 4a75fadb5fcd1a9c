package ports

import (
	"context"
)

// ReaderUI is the interface for the interactive reading surface.
// This is a driving port (called by the application layer).
type ReaderUI interface {
	// Run starts the reader interface and blocks until the user exits.
	Run(ctx context.Context) error

	// Stop gracefully stops the reader interface.
	Stop()
}
