// Package ussd implements the gateway's USSD session protocol: each inbound
// callback carries a command (initiate, continue, terminate) and the service
// must answer every turn with a continue or terminate reply. The gateway owns
// the session; nothing here keeps server-side session state.
package ussd

import (
	"encoding/json"
	"strings"

	"github.com/tzcomms/beem-callback-gateway/internal/callback_service/domain"
)

// Session commands, as sent and received on the wire.
const (
	CommandInitiate  = "initiate"
	CommandContinue  = "continue"
	CommandTerminate = "terminate"
)

// DefaultTerminateText is the reply text used when no business handler
// produced a reply for a session turn.
const DefaultTerminateText = "Service unavailable. Please try again later."

// Callback is one inbound USSD session turn.
type Callback struct {
	Command            string
	MSISDN             string
	Operator           string
	SessionID          string
	RequestID          int
	SubscriberResponse string
}

// Handler is the seam for business logic. It receives the normalized turn and
// returns the reply to send, or nil to let the protocol terminate the session
// with DefaultTerminateText.
type Handler func(Callback) *Reply

// Receive normalizes a raw inbound callback body. It never fails: a missing
// or unknown command degrades to initiate, the safest state, and absent
// fields stay at their zero values.
func Receive(raw []byte) Callback {
	p := domain.ParseBytes(raw, domain.UssdFields())
	command := strings.ToLower(strings.TrimSpace(p.GetString(domain.FieldCommand)))
	switch command {
	case CommandInitiate, CommandContinue, CommandTerminate:
	default:
		command = CommandInitiate
	}
	return Callback{
		Command:            command,
		MSISDN:             p.GetString(domain.FieldMSISDN),
		Operator:           p.GetString(domain.FieldOperator),
		SessionID:          p.GetString(domain.FieldSessionID),
		RequestID:          p.GetInt(domain.FieldRequestID),
		SubscriberResponse: p.GetString(domain.FieldResponse),
	}
}

// Reply is one outbound session turn. Business handlers are trusted to pick
// continue vs terminate and to manage RequestID (convention: +1 per continue
// turn, 0 for a terminate without interaction).
type Reply struct {
	MSISDN    string `validate:"required"`
	Operator  string `validate:"required"`
	SessionID string `validate:"required"`
	Command   string `validate:"required,oneof=continue terminate"`
	RequestID int    `validate:"gte=0"`
	Text      string `validate:"required"`
}

// BuildReply pairs a callback with its reply. A caller-supplied reply is used
// verbatim; with none, the session is terminated with DefaultTerminateText so
// the gateway always gets a well-formed terminal response and the subscriber
// is not left hanging. Pure function of its inputs.
func BuildReply(cb Callback, reply *Reply) Reply {
	if reply != nil {
		return *reply
	}
	return Reply{
		MSISDN:    cb.MSISDN,
		Operator:  cb.Operator,
		SessionID: cb.SessionID,
		Command:   CommandTerminate,
		RequestID: cb.RequestID,
		Text:      DefaultTerminateText,
	}
}

// replyWire mirrors the inbound shape: request_id and the reply text nest
// under "payload" so the gateway can correlate turns.
type replyWire struct {
	MSISDN    string       `json:"msisdn"`
	Operator  string       `json:"operator"`
	SessionID string       `json:"session_id"`
	Command   string       `json:"command"`
	Payload   replyPayload `json:"payload"`
}

type replyPayload struct {
	RequestID int    `json:"request_id"`
	Request   string `json:"request"`
}

func (r Reply) MarshalJSON() ([]byte, error) {
	return json.Marshal(replyWire{
		MSISDN:    r.MSISDN,
		Operator:  r.Operator,
		SessionID: r.SessionID,
		Command:   r.Command,
		Payload: replyPayload{
			RequestID: r.RequestID,
			Request:   r.Text,
		},
	})
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	var w replyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Reply{
		MSISDN:    w.MSISDN,
		Operator:  w.Operator,
		SessionID: w.SessionID,
		Command:   w.Command,
		RequestID: w.Payload.RequestID,
		Text:      w.Payload.Request,
	}
	return nil
}
