package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/app"
	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
)

const MaxRequestBodySize = 1 << 20 // 1 MB

// SecureTokenHeader carries the shared secret on payment callbacks.
const SecureTokenHeader = "beem-secure-token"

// CallbackDispatcher is the interface the handler needs from the app layer.
type CallbackDispatcher interface {
	Dispatch(ctx context.Context, kind domain.CallbackKind, raw []byte) (app.Ack, domain.CallbackEvent)
}

// WebhookHandler terminates the gateway's webhook calls. Its contract with
// the gateway: always answer 2xx with a best-effort ack, even for malformed
// bodies — the gateway retries aggressively on anything else. The only non-2xx
// is 401 on a payment secure-token mismatch.
type WebhookHandler struct {
	dispatcher  CallbackDispatcher
	logger      *slog.Logger
	secureToken string
}

func NewWebhookHandler(dispatcher CallbackDispatcher, secureToken string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher:  dispatcher,
		logger:      logger.With("component", "webhook_handler"),
		secureToken: secureToken,
	}
}

func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/callbacks/payment", h.handlePayment)
	r.Post("/callbacks/collection", h.handleKind(domain.KindCollectionCallback))
	r.Post("/callbacks/sms/dlr", h.handleKind(domain.KindDeliveryReport))
	r.Post("/callbacks/sms/inbound", h.handleKind(domain.KindInboundMessage))
	r.Post("/callbacks/airtime", h.handleKind(domain.KindAirtimeResult))
	r.Post("/callbacks/disbursement", h.handleKind(domain.KindDisbursementResult))
	r.Post("/callbacks/ussd", h.handleKind(domain.KindUssdSession))
}

func (h *WebhookHandler) handlePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx), "kind", domain.KindPaymentCallback)

	if h.secureToken != "" && r.Header.Get(SecureTokenHeader) != h.secureToken {
		logger.WarnContext(ctx, "Payment callback secure token mismatch", "remote_addr", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid secure token"})
		return
	}

	h.dispatch(w, r, domain.KindPaymentCallback, logger)
}

func (h *WebhookHandler) handleKind(kind domain.CallbackKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx), "kind", kind)
		h.dispatch(w, r, kind, logger)
	}
}

func (h *WebhookHandler) dispatch(w http.ResponseWriter, r *http.Request, kind domain.CallbackKind, logger *slog.Logger) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		// Oversized or unreadable bodies still get dispatched as empty input:
		// the dispatcher produces an all-defaults event and a 2xx ack.
		logger.WarnContext(ctx, "Failed to read callback body", "error", err)
		raw = nil
	}
	defer r.Body.Close()

	logger.InfoContext(ctx, "Received callback", "remote_addr", r.RemoteAddr, "payload_size", len(raw))

	ack, event := h.dispatcher.Dispatch(ctx, kind, raw)
	logger.InfoContext(ctx, "Callback dispatched",
		"event_id", event.ID, "event_type", event.Type, "reference", event.Reference())

	if ack.Body == nil {
		w.WriteHeader(ack.Status)
		return
	}
	writeJSON(w, ack.Status, ack.Body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
