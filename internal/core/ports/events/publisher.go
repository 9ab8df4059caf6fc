package events

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// EventPublisher delivers committed ledger and budget changes to interested consumers.
// Implementations must not block the caller on slow consumers for long.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LedgerEvent) error
}
