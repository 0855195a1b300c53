package domain

import "strings"

// PaymentStatusSucceeded applies the fail-closed payment status rule: only a
// case-insensitive exact "success" counts. Anything else, including padded or
// empty values, is a failure. No trimming: "SUCCESS " with a trailing space
// has been observed and must not be taken as success.
func PaymentStatusSucceeded(status string) bool {
	return strings.EqualFold(status, "success")
}

// DeliveryReport is a typed view over a normalized DLR payload.
type DeliveryReport struct {
	Payload Payload
}

// ParseDeliveryReport normalizes a raw DLR body.
func ParseDeliveryReport(body []byte) DeliveryReport {
	return DeliveryReport{Payload: ParseBytes(body, DeliveryReportFields())}
}

func (d DeliveryReport) status() string { return d.Payload.GetString(FieldStatus) }

func (d DeliveryReport) IsDelivered() bool { return strings.EqualFold(d.status(), "delivered") }
func (d DeliveryReport) IsFailed() bool    { return strings.EqualFold(d.status(), "failed") }
func (d DeliveryReport) IsPending() bool   { return strings.EqualFold(d.status(), "pending") }
func (d DeliveryReport) IsRetry() bool     { return strings.EqualFold(d.status(), "retry") }

// OTPResult is a typed view over an OTP request or verify response.
type OTPResult struct {
	Code    int
	Message string
	PinID   string
}

// ParseOTPResult normalizes an OTP response across its three observed shapes
// (flat, nested under data.message, pinId-only).
func ParseOTPResult(body []byte) OTPResult {
	p := ParseBytes(body, OTPFields())
	return OTPResult{
		Code:    p.GetInt(FieldCode),
		Message: p.GetString(FieldMessage),
		PinID:   p.GetString(FieldPinID),
	}
}

func (r OTPResult) IsValid() bool {
	return r.Code == CodeOTPValidPin
}

// BatchEntryStatus is one per-recipient status out of a batch SMS status
// response.
type BatchEntryStatus struct {
	RequestID int
	Status    string
}

// BatchStatuses extracts per-entry statuses from a batch response whose
// "data" member is an array of {request_id, status} objects.
func BatchStatuses(raw map[string]any) []BatchEntryStatus {
	entries, _ := lookupPath(raw, []string{"data"}).([]any)
	out := make([]BatchEntryStatus, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, BatchEntryStatus{
			RequestID: coerceInt(m["request_id"]),
			Status:    coerceString(m["status"]),
		})
	}
	return out
}

// BatchSucceeded reports whether any entry in a batch status response carries
// status "0". The gateway treats a batch as successful when at least one
// recipient was accepted; per-entry results stay available through
// BatchStatuses for callers that need partial-failure detail.
func BatchSucceeded(raw map[string]any) bool {
	for _, entry := range BatchStatuses(raw) {
		if entry.Status == "0" {
			return true
		}
	}
	return false
}
