package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
)

func TestPaymentStatusSucceeded_FailClosed(t *testing.T) {
	succeeded := []string{"success", "SUCCESS", "Success", "sUcCeSs"}
	for _, status := range succeeded {
		assert.True(t, domain.PaymentStatusSucceeded(status), "status %q", status)
	}

	// Everything else classifies as failed, including padded values.
	failed := []string{"failed", "FAILED", "pending", "", "SUCCESS ", " success", "successful", "ok"}
	for _, status := range failed {
		assert.False(t, domain.PaymentStatusSucceeded(status), "status %q", status)
	}
}

func TestDeliveryReport_StatusPredicates(t *testing.T) {
	t.Run("delivered is case-insensitive", func(t *testing.T) {
		d := domain.ParseDeliveryReport([]byte(`{"status":"DELIVERED"}`))
		assert.True(t, d.IsDelivered())
		assert.False(t, d.IsFailed())
	})

	t.Run("all documented statuses", func(t *testing.T) {
		cases := map[string]func(domain.DeliveryReport) bool{
			"delivered": domain.DeliveryReport.IsDelivered,
			"failed":    domain.DeliveryReport.IsFailed,
			"pending":   domain.DeliveryReport.IsPending,
			"retry":     domain.DeliveryReport.IsRetry,
		}
		for status, predicate := range cases {
			d := domain.ParseDeliveryReport([]byte(`{"status":"` + status + `"}`))
			assert.True(t, predicate(d), "status %q", status)
		}
	})

	t.Run("full report fields", func(t *testing.T) {
		d := domain.ParseDeliveryReport([]byte(`{"dest_addr":"255712345678","request_id":35,"status":"DELIVERED","recipient_id":"1"}`))
		assert.Equal(t, "255712345678", d.Payload.GetString(domain.FieldDestAddr))
		assert.Equal(t, 35, d.Payload.GetInt(domain.FieldRequestID))
		assert.Equal(t, "1", d.Payload.GetString(domain.FieldRecipientID))
	})
}

func TestParseOTPResult(t *testing.T) {
	t.Run("verify response nested under data.message", func(t *testing.T) {
		r := domain.ParseOTPResult([]byte(`{"data":{"message":{"code":117,"message":"Valid Pin"}}}`))
		assert.True(t, r.IsValid())
		assert.Equal(t, domain.CodeOTPValidPin, r.Code)
		assert.Equal(t, "Valid Pin", r.Message)
	})

	t.Run("flat verify response", func(t *testing.T) {
		r := domain.ParseOTPResult([]byte(`{"code":118,"message":"Invalid Pin"}`))
		assert.False(t, r.IsValid())
		assert.Equal(t, "Invalid Pin", r.Message)
	})

	t.Run("request response with pinId variants", func(t *testing.T) {
		for _, body := range []string{
			`{"pinId":"abc-123"}`,
			`{"data":{"pinId":"abc-123"}}`,
		} {
			r := domain.ParseOTPResult([]byte(body))
			assert.Equal(t, "abc-123", r.PinID)
			assert.False(t, r.IsValid())
		}
	})
}

func TestBatchStatuses(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"data":[
		{"request_id":1,"status":"0"},
		{"request_id":2,"status":"5"},
		{"request_id":3,"status":"0"}
	]}`), &raw))

	entries := domain.BatchStatuses(raw)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.BatchEntryStatus{RequestID: 1, Status: "0"}, entries[0])
	assert.Equal(t, domain.BatchEntryStatus{RequestID: 2, Status: "5"}, entries[1])
}

func TestBatchSucceeded(t *testing.T) {
	decode := func(s string) map[string]any {
		var raw map[string]any
		require.NoError(t, json.Unmarshal([]byte(s), &raw))
		return raw
	}

	t.Run("any zero-status entry wins", func(t *testing.T) {
		raw := decode(`{"data":[{"request_id":1,"status":"5"},{"request_id":2,"status":"0"}]}`)
		assert.True(t, domain.BatchSucceeded(raw))
	})

	t.Run("no zero-status entries", func(t *testing.T) {
		raw := decode(`{"data":[{"request_id":1,"status":"5"},{"request_id":2,"status":"7"}]}`)
		assert.False(t, domain.BatchSucceeded(raw))
	})

	t.Run("empty or missing data", func(t *testing.T) {
		assert.False(t, domain.BatchSucceeded(decode(`{"data":[]}`)))
		assert.False(t, domain.BatchSucceeded(decode(`{}`)))
	})
}
