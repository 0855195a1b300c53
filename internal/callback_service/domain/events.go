package domain

import "time"

// CallbackKind identifies which webhook endpoint a payload arrived on.
type CallbackKind string

const (
	KindPaymentCallback    CallbackKind = "payment"
	KindCollectionCallback CallbackKind = "collection"
	KindDeliveryReport     CallbackKind = "sms_dlr"
	KindInboundMessage     CallbackKind = "sms_inbound"
	KindAirtimeResult      CallbackKind = "airtime"
	KindDisbursementResult CallbackKind = "disbursement"
	KindUssdSession        CallbackKind = "ussd"
)

// EventType tags the single populated variant of a CallbackEvent.
type EventType string

const (
	EventPaymentSucceeded         EventType = "payment.succeeded"
	EventPaymentFailed            EventType = "payment.failed"
	EventSmsDeliveryReceived      EventType = "sms.delivery_report"
	EventInboundMessageReceived   EventType = "sms.inbound"
	EventCollectionReceived       EventType = "collection.received"
	EventAirtimeTransferCompleted EventType = "airtime.completed"
	EventUssdSessionReceived      EventType = "ussd.session"
)

// CallbackEvent is the normalized form handed to notification sinks. Exactly
// one Type is set per dispatch and Payload is the single normalized payload
// backing that variant.
type CallbackEvent struct {
	ID         string       `json:"id"`
	Kind       CallbackKind `json:"kind"`
	Type       EventType    `json:"type"`
	Payload    Payload      `json:"payload"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// Reference extracts the best correlation key the payload offers: the
// transaction ID for money movements, the session ID for USSD, the provider
// message ID for inbound SMS.
func (e CallbackEvent) Reference() string {
	for _, name := range []string{FieldTransactionID, FieldSessionID, FieldMessageID, FieldReference} {
		if ref := e.Payload.GetString(name); ref != "" {
			return ref
		}
	}
	return ""
}
