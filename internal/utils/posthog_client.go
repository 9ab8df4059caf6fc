package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultPosthogEndpoint is the EU ingestion host.
const DefaultPosthogEndpoint = "https://eu.i.posthog.com"

// PosthogClientWrapper sends product analytics for the finance API. Without an API key
// every call is a no-op, so handlers never need to check for a client.
type PosthogClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient builds the wrapper. A client construction failure is logged
// and yields a disabled wrapper rather than stopping startup.
func InitializePosthogClient(apiKey string, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("PostHog API key not set, analytics disabled")
		return &PosthogClientWrapper{}
	}
	if endpoint == "" {
		endpoint = DefaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to create PostHog client, analytics disabled", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	logger.Info("PostHog analytics enabled", slog.String("endpoint", endpoint))
	return &PosthogClientWrapper{client: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.client != nil
}

// Enqueue queues event for the user. Properties never include amounts or descriptions;
// callers pass only resource names and ids.
func (w *PosthogClientWrapper) Enqueue(userID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	capture := posthog.Capture{
		DistinctId: userID,
		Event:      event,
		Properties: posthog.Properties(properties),
	}
	if err := w.client.Enqueue(capture); err != nil {
		w.logger.Warn("Failed to enqueue analytics event",
			slog.String("event", event),
			slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("Analytics event queued", slog.String("user_id", userID), slog.String("event", event))
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.client.Close(); err != nil {
		w.logger.Warn("Failed to flush analytics events", slog.String("error", err.Error()))
	}
}
