package domain_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
)

func TestClassifyError_RecognizedBusinessFailure(t *testing.T) {
	body := []byte(`{"code":103,"message":"Insufficient balance"}`)

	derr := domain.ClassifyError(domain.ProductDisbursement, http.StatusBadRequest, body)
	require.NotNil(t, derr)

	assert.Equal(t, domain.ErrKindDomain, derr.Kind)
	assert.False(t, derr.Retryable)
	assert.Equal(t, "Insufficient balance", derr.Message)
	require.NotNil(t, derr.Code)
	assert.Equal(t, domain.CodeDisbursementNoBalance, derr.Code.Value)
	assert.True(t, derr.IsInsufficientBalance())
	assert.False(t, derr.IsAuthFailure())
}

func TestClassifyError_NestedCodeVariant(t *testing.T) {
	body := []byte(`{"data":{"message":{"code":118,"message":"Invalid Pin"}}}`)

	derr := domain.ClassifyError(domain.ProductOTP, http.StatusBadRequest, body)
	assert.Equal(t, domain.ErrKindDomain, derr.Kind)
	require.NotNil(t, derr.Code)
	assert.Equal(t, domain.CodeOTPInvalidPin, derr.Code.Value)
	assert.Equal(t, "Invalid Pin", derr.Message)
}

func TestClassifyError_DescriptionFallbackWhenMessageEmpty(t *testing.T) {
	body := []byte(`{"code":104}`)

	derr := domain.ClassifyError(domain.ProductSMS, http.StatusBadRequest, body)
	assert.Equal(t, domain.ErrKindDomain, derr.Kind)
	assert.Equal(t, "Insufficient SMS balance", derr.Message)
}

func TestClassifyError_NoCodePresent(t *testing.T) {
	t.Run("html error page", func(t *testing.T) {
		body := []byte("<html><body>Service Unavailable</body></html>")
		derr := domain.ClassifyError(domain.ProductSMS, http.StatusServiceUnavailable, body)
		assert.Equal(t, domain.ErrKindTransient, derr.Kind)
		assert.True(t, derr.Retryable)
		assert.Nil(t, derr.Code)
		// HTML bodies are not echoed; the status text is used instead.
		assert.Equal(t, "Service Unavailable", derr.Message)
	})

	t.Run("short plain-text body", func(t *testing.T) {
		derr := domain.ClassifyError(domain.ProductSMS, http.StatusBadRequest, []byte("invalid api key"))
		assert.Equal(t, domain.ErrKindProtocol, derr.Kind)
		assert.False(t, derr.Retryable)
		assert.Equal(t, "invalid api key", derr.Message)
	})

	t.Run("empty body", func(t *testing.T) {
		derr := domain.ClassifyError(domain.ProductOTP, http.StatusBadRequest, nil)
		assert.Equal(t, domain.ErrKindProtocol, derr.Kind)
		assert.Equal(t, "Bad Request", derr.Message)
	})
}

func TestClassifyError_CodeZeroTreatedAsAbsent(t *testing.T) {
	body := []byte(`{"code":0,"message":"something odd"}`)

	derr := domain.ClassifyError(domain.ProductAirtime, http.StatusBadRequest, body)
	assert.Equal(t, domain.ErrKindProtocol, derr.Kind)
	assert.Nil(t, derr.Code)
	assert.Equal(t, "something odd", derr.Message)
}

func TestClassifyError_UnknownCode(t *testing.T) {
	t.Run("out of range code", func(t *testing.T) {
		derr := domain.ClassifyError(domain.ProductSMS, http.StatusBadRequest, []byte(`{"code":999}`))
		assert.Equal(t, domain.ErrKindProtocol, derr.Kind)
		assert.Nil(t, derr.Code)
		assert.Equal(t, "unrecognized response code 999", derr.Message)
	})

	t.Run("negative code", func(t *testing.T) {
		derr := domain.ClassifyError(domain.ProductSMS, http.StatusBadRequest, []byte(`{"code":-5,"message":"weird"}`))
		assert.Equal(t, domain.ErrKindProtocol, derr.Kind)
		assert.Nil(t, derr.Code)
	})
}

func TestClassifyError_Retryability(t *testing.T) {
	t.Run("retryable http statuses", func(t *testing.T) {
		for _, status := range []int{408, 429, 500, 502, 503, 504} {
			derr := domain.ClassifyError(domain.ProductSMS, status, nil)
			assert.True(t, derr.Retryable, "status %d must be retryable", status)
		}
	})

	t.Run("non-retryable http statuses", func(t *testing.T) {
		for _, status := range []int{400, 401, 403, 404, 422} {
			derr := domain.ClassifyError(domain.ProductSMS, status, nil)
			assert.False(t, derr.Retryable, "status %d must not be retryable", status)
		}
	})

	t.Run("pending code is retryable regardless of status", func(t *testing.T) {
		derr := domain.ClassifyError(domain.ProductDisbursement, http.StatusOK, []byte(`{"code":101,"message":"Disbursement pending settlement"}`))
		assert.Equal(t, domain.ErrKindDomain, derr.Kind)
		assert.True(t, derr.Retryable)
	})
}

func TestDomainError_ErrorString(t *testing.T) {
	derr := domain.ClassifyError(domain.ProductDisbursement, http.StatusBadRequest, []byte(`{"code":103,"message":"Insufficient balance"}`))
	assert.Contains(t, derr.Error(), "Insufficient balance")
	assert.Contains(t, derr.Error(), "code 103")
}
