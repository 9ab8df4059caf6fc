package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsevt "github.com/SscSPs/fintrack_app/internal/core/ports/events"
	"github.com/SscSPs/fintrack_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Events portsevt.EventPublisher
	Now    func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// CurrentTime returns the injected clock's time, or time.Now in UTC.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// PublishEvent hands a committed change to the configured publisher.
// Failures are logged; the write they describe has already happened.
func (s *BaseService) PublishEvent(ctx context.Context, eventType domain.LedgerEventType, userID, entityID string) {
	if s.Events == nil {
		return
	}
	event := domain.NewLedgerEvent(eventType, userID, entityID)
	if err := s.Events.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("event_type", string(eventType)),
			slog.String("entity_id", entityID))
	}
}
