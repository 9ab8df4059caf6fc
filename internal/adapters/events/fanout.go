package events

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsevt "github.com/SscSPs/fintrack_app/internal/core/ports/events"
	"github.com/SscSPs/fintrack_app/internal/middleware"
)

// Fanout delivers each event to every sink. A failing sink does not stop the others.
type Fanout struct {
	sinks []portsevt.EventPublisher
}

var _ portsevt.EventPublisher = (*Fanout)(nil)

// NewFanout skips nil sinks.
func NewFanout(sinks ...portsevt.EventPublisher) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, event domain.LedgerEvent) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, event); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Event sink failed",
				slog.String("event_type", string(event.Type)),
				slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, domain.LedgerEvent) error { return nil }
