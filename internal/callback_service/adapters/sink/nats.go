// Package sink provides NotificationSink implementations: a NATS-backed
// publisher for fan-out to downstream consumers and a ledger decorator that
// records deliveries for duplicate detection by those consumers.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
	"github.com/tzcomms/beem-callback-gateway/internal/platform/messagebroker"
)

// NATSSink publishes callback events to subjects of the form
// "<prefix>.<kind>", e.g. "callbacks.payment".
type NATSSink struct {
	client        messagebroker.NATSClient
	subjectPrefix string
	logger        *slog.Logger
}

func NewNATSSink(client messagebroker.NATSClient, subjectPrefix string, logger *slog.Logger) *NATSSink {
	if subjectPrefix == "" {
		subjectPrefix = "callbacks"
	}
	return &NATSSink{
		client:        client,
		subjectPrefix: subjectPrefix,
		logger:        logger.With("component", "nats_sink"),
	}
}

func (s *NATSSink) Notify(ctx context.Context, event domain.CallbackEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal callback event %s: %w", event.ID, err)
	}

	subject := fmt.Sprintf("%s.%s", s.subjectPrefix, event.Kind)
	if err := s.client.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish callback event %s: %w", event.ID, err)
	}

	s.logger.DebugContext(ctx, "Published callback event",
		"subject", subject, "event_id", event.ID, "event_type", event.Type)
	return nil
}
