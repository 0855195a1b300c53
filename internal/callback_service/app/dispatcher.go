package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/ussd"
)

// NotificationSink receives every normalized callback event. Delivery is
// at-most-once: the dispatcher logs and counts a failed Notify but never
// blocks the acknowledgement on it.
type NotificationSink interface {
	Notify(ctx context.Context, event domain.CallbackEvent) error
}

// Ack is the HTTP-shaped acknowledgement the webhook endpoint returns to the
// gateway. A nil Body means an empty response (204-style).
type Ack struct {
	Status int
	Body   any
}

// Dispatcher normalizes raw callback bodies into events, emits them to the
// sink, and produces the per-product acknowledgement. It never returns an
// error: the gateway retries aggressively on non-2xx responses, so even an
// all-defaults payload gets a best-effort event and a 2xx ack.
type Dispatcher struct {
	sink            NotificationSink
	validate        *validator.Validate
	logger          *slog.Logger
	ussdHandler     ussd.Handler
	ussdDefaultText string
}

// Option configures optional dispatcher behavior.
type Option func(*Dispatcher)

// WithUssdHandler registers the business logic invoked for each USSD turn.
func WithUssdHandler(h ussd.Handler) Option {
	return func(d *Dispatcher) { d.ussdHandler = h }
}

// WithUssdDefaultText overrides the terminate text used when no handler
// produced a reply.
func WithUssdDefaultText(text string) Option {
	return func(d *Dispatcher) { d.ussdDefaultText = text }
}

func NewDispatcher(sink NotificationSink, validate *validator.Validate, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sink:     sink,
		validate: validate,
		logger:   logger.With("component", "dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch routes one raw callback body by kind. The returned event has
// exactly one type set and wraps the single normalized payload built from the
// body.
func (d *Dispatcher) Dispatch(ctx context.Context, kind domain.CallbackKind, raw []byte) (Ack, domain.CallbackEvent) {
	start := time.Now()
	defer func() {
		dispatchDurationHist.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	}()

	var (
		ack   Ack
		event domain.CallbackEvent
	)
	switch kind {
	case domain.KindPaymentCallback:
		ack, event = d.dispatchPayment(raw)
	case domain.KindCollectionCallback:
		ack, event = d.dispatchCollection(raw)
	case domain.KindDeliveryReport:
		ack, event = d.dispatchDeliveryReport(raw)
	case domain.KindInboundMessage:
		ack, event = d.dispatchInboundMessage(raw)
	case domain.KindAirtimeResult, domain.KindDisbursementResult:
		ack, event = d.dispatchAirtime(kind, raw)
	case domain.KindUssdSession:
		ack, event = d.dispatchUssd(ctx, raw)
	default:
		// Unknown kinds still get acknowledged; the gateway must not retry.
		d.logger.WarnContext(ctx, "Unknown callback kind", "kind", kind)
		return Ack{Status: http.StatusOK, Body: map[string]string{"status": "received"}}, domain.CallbackEvent{}
	}

	callbacksReceivedCounter.WithLabelValues(string(kind), string(event.Type)).Inc()
	d.emit(ctx, event)
	return ack, event
}

func (d *Dispatcher) newEvent(kind domain.CallbackKind, typ domain.EventType, payload domain.Payload) domain.CallbackEvent {
	return domain.CallbackEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Type:       typ,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// emit is fire-and-forget: sink results are logged and counted, never
// inspected by callers.
func (d *Dispatcher) emit(ctx context.Context, event domain.CallbackEvent) {
	if d.sink == nil {
		return
	}
	if err := d.sink.Notify(ctx, event); err != nil {
		sinkNotifyFailuresCounter.WithLabelValues(string(event.Kind)).Inc()
		d.logger.ErrorContext(ctx, "Failed to notify sink",
			"error", err, "event_id", event.ID, "event_type", event.Type)
	}
}

func (d *Dispatcher) dispatchPayment(raw []byte) (Ack, domain.CallbackEvent) {
	payload := domain.ParseBytes(raw, domain.PaymentFields())
	eventType := domain.EventPaymentFailed
	if domain.PaymentStatusSucceeded(payload.GetString(domain.FieldStatus)) {
		eventType = domain.EventPaymentSucceeded
	}
	event := d.newEvent(domain.KindPaymentCallback, eventType, payload)
	return Ack{Status: http.StatusOK, Body: map[string]string{"status": "received"}}, event
}

func (d *Dispatcher) dispatchCollection(raw []byte) (Ack, domain.CallbackEvent) {
	payload := domain.ParseBytes(raw, domain.CollectionFields())
	event := d.newEvent(domain.KindCollectionCallback, domain.EventCollectionReceived, payload)
	ack := Ack{Status: http.StatusOK, Body: map[string]string{
		"transaction_id": payload.GetString(domain.FieldTransactionID),
		"successful":     "true",
	}}
	return ack, event
}

func (d *Dispatcher) dispatchDeliveryReport(raw []byte) (Ack, domain.CallbackEvent) {
	payload := domain.ParseBytes(raw, domain.DeliveryReportFields())
	event := d.newEvent(domain.KindDeliveryReport, domain.EventSmsDeliveryReceived, payload)
	return Ack{Status: http.StatusNoContent}, event
}

func (d *Dispatcher) dispatchInboundMessage(raw []byte) (Ack, domain.CallbackEvent) {
	payload := domain.ParseBytes(raw, domain.InboundMessageFields())
	event := d.newEvent(domain.KindInboundMessage, domain.EventInboundMessageReceived, payload)
	return Ack{Status: http.StatusOK, Body: map[string]string{"status": "received"}}, event
}

func (d *Dispatcher) dispatchAirtime(kind domain.CallbackKind, raw []byte) (Ack, domain.CallbackEvent) {
	payload := domain.ParseBytes(raw, domain.AirtimeFields())
	event := d.newEvent(kind, domain.EventAirtimeTransferCompleted, payload)
	return Ack{Status: http.StatusOK, Body: map[string]string{"status": "received"}}, event
}

func (d *Dispatcher) dispatchUssd(ctx context.Context, raw []byte) (Ack, domain.CallbackEvent) {
	cb := ussd.Receive(raw)

	var businessReply *ussd.Reply
	if d.ussdHandler != nil {
		businessReply = d.ussdHandler(cb)
	}
	if businessReply != nil && d.validate != nil {
		if err := d.validate.Struct(businessReply); err != nil {
			ussdRepliesRejectedCounter.WithLabelValues(businessReply.Command).Inc()
			d.logger.WarnContext(ctx, "Business USSD reply failed validation, terminating session",
				"error", err, "session_id", cb.SessionID)
			businessReply = nil
		}
	}

	reply := ussd.BuildReply(cb, businessReply)
	if businessReply == nil && d.ussdDefaultText != "" {
		reply.Text = d.ussdDefaultText
	}

	payload := domain.Payload{
		domain.FieldCommand:   cb.Command,
		domain.FieldMSISDN:    cb.MSISDN,
		domain.FieldOperator:  cb.Operator,
		domain.FieldSessionID: cb.SessionID,
		domain.FieldRequestID: cb.RequestID,
		domain.FieldResponse:  cb.SubscriberResponse,
	}
	event := d.newEvent(domain.KindUssdSession, domain.EventUssdSessionReceived, payload)
	return Ack{Status: http.StatusOK, Body: reply}, event
}
