package domain

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrorKind groups gateway failures for propagation decisions.
type ErrorKind string

const (
	// ErrKindValidation marks malformed outbound requests caught before any
	// network call. Raised by the request-building layer, not by this package.
	ErrKindValidation ErrorKind = "validation"
	// ErrKindProtocol marks unrecognized or malformed gateway responses.
	ErrKindProtocol ErrorKind = "protocol"
	// ErrKindDomain marks a recognized product response code describing a
	// business failure.
	ErrKindDomain ErrorKind = "domain"
	// ErrKindTransient marks failures worth retrying (timeouts, 5xx, 429).
	ErrKindTransient ErrorKind = "transient"
)

// DomainError is the classified form of a gateway failure. It is a value:
// classification never panics and never returns nil, and the caller decides
// whether to propagate it as an error.
type DomainError struct {
	Kind       ErrorKind
	Code       *ResponseCode
	HTTPStatus int
	Message    string
	Retryable  bool
}

func (e *DomainError) Error() string {
	if e.Code != nil {
		return fmt.Sprintf("%s: %s (code %d, http %d)", e.Kind, e.Message, e.Code.Value, e.HTTPStatus)
	}
	return fmt.Sprintf("%s: %s (http %d)", e.Kind, e.Message, e.HTTPStatus)
}

func (e *DomainError) IsInsufficientBalance() bool {
	return e.Code != nil && e.Code.IsInsufficientBalance()
}

func (e *DomainError) IsInvalidPhoneNumber() bool {
	return e.Code != nil && e.Code.IsInvalidPhoneNumber()
}

func (e *DomainError) IsAuthFailure() bool {
	return e.Code != nil && e.Code.IsAuthFailure()
}

// retryableStatuses are the HTTP statuses worth retrying regardless of body.
var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

const maxRawBodyMessage = 200

// ClassifyError turns a failed gateway response into a DomainError. It never
// fails: a body that carries no recognizable code still produces a protocol
// or transient error with a best-effort message.
func ClassifyError(product Product, httpStatus int, body []byte) *DomainError {
	payload := ParseBytes(body, ResponseFields())
	code := payload.GetInt(FieldCode)
	message := strings.TrimSpace(payload.GetString(FieldMessage))
	retryable := retryableStatuses[httpStatus]

	if code <= 0 {
		kind := ErrKindProtocol
		if retryable {
			kind = ErrKindTransient
		}
		if message == "" {
			message = rawBodyMessage(body, httpStatus)
		}
		return &DomainError{
			Kind:       kind,
			HTTPStatus: httpStatus,
			Message:    message,
			Retryable:  retryable,
		}
	}

	rc, ok := Classify(product, code)
	if !ok {
		if message == "" {
			message = fmt.Sprintf("unrecognized response code %d", code)
		}
		return &DomainError{
			Kind:       ErrKindProtocol,
			HTTPStatus: httpStatus,
			Message:    message,
			Retryable:  retryable,
		}
	}

	if message == "" {
		message = rc.Description
	}
	return &DomainError{
		Kind:       ErrKindDomain,
		Code:       &rc,
		HTTPStatus: httpStatus,
		Message:    message,
		Retryable:  retryable || rc.IsPending(),
	}
}

// rawBodyMessage falls back to the response body when it is short printable
// text, else to the HTTP status text. HTML error pages and binary bodies are
// not worth echoing into error messages.
func rawBodyMessage(body []byte, httpStatus int) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" && utf8.ValidString(trimmed) &&
		len(trimmed) <= maxRawBodyMessage && !strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	if text := http.StatusText(httpStatus); text != "" {
		return text
	}
	return fmt.Sprintf("gateway returned status %d", httpStatus)
}
