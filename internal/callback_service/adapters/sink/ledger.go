package sink

import (
	"context"
	"log/slog"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
)

// EventRecorder is the persistence surface the ledger decorator needs.
type EventRecorder interface {
	Record(ctx context.Context, event domain.CallbackEvent) error
}

// LedgerSink records every event before forwarding it to the inner sink.
// Recording failures are logged and do not stop forwarding: the ledger exists
// for duplicate-delivery bookkeeping, not as a delivery guarantee.
type LedgerSink struct {
	recorder EventRecorder
	inner    NotifySink
	logger   *slog.Logger
}

// NotifySink mirrors app.NotificationSink without importing the app package.
type NotifySink interface {
	Notify(ctx context.Context, event domain.CallbackEvent) error
}

func NewLedgerSink(recorder EventRecorder, inner NotifySink, logger *slog.Logger) *LedgerSink {
	return &LedgerSink{
		recorder: recorder,
		inner:    inner,
		logger:   logger.With("component", "ledger_sink"),
	}
}

func (s *LedgerSink) Notify(ctx context.Context, event domain.CallbackEvent) error {
	if err := s.recorder.Record(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record callback event in ledger",
			"error", err, "event_id", event.ID)
	}
	if s.inner == nil {
		return nil
	}
	return s.inner.Notify(ctx, event)
}
