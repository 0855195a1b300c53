package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
)

// EventLedgerRepository is an insert-only record of dispatched callback
// events. The gateway may deliver the same webhook more than once; the
// dispatcher never deduplicates, so consumers use WasSeen to decide whether a
// (kind, reference) pair was already handled.
type EventLedgerRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewEventLedgerRepository(db *pgxpool.Pool, logger *slog.Logger) *EventLedgerRepository {
	return &EventLedgerRepository{
		db:     db,
		logger: logger.With("component", "event_ledger_repository"),
	}
}

// Record inserts one event row. Replays of the same event ID are ignored.
func (r *EventLedgerRepository) Record(ctx context.Context, event domain.CallbackEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `
		INSERT INTO callback_events (id, kind, event_type, reference, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = r.db.Exec(ctx, query,
		event.ID, string(event.Kind), string(event.Type), event.Reference(), payload, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to insert callback event: %w", err)
	}

	r.logger.DebugContext(ctx, "Recorded callback event",
		"event_id", event.ID, "kind", event.Kind, "reference", event.Reference())
	return nil
}

// WasSeen reports whether any event of this kind already arrived with the
// given correlation reference (transaction ID, session ID or message ID).
func (r *EventLedgerRepository) WasSeen(ctx context.Context, kind domain.CallbackKind, reference string) (bool, error) {
	if reference == "" {
		return false, nil
	}

	var seen bool
	query := `SELECT EXISTS(SELECT 1 FROM callback_events WHERE kind = $1 AND reference = $2)`
	if err := r.db.QueryRow(ctx, query, string(kind), reference).Scan(&seen); err != nil {
		return false, fmt.Errorf("failed to query callback ledger: %w", err)
	}
	return seen, nil
}
