package domain

// Logical field names shared by the spec tables and the event consumers.
const (
	FieldAmount          = "amount"
	FieldAmountCollected = "amount_collected"
	FieldCode            = "code"
	FieldCommand         = "command"
	FieldDestAddr        = "dest_addr"
	FieldFrom            = "from"
	FieldMCCNetwork      = "mcc_network"
	FieldMessage         = "message"
	FieldMessageID       = "message_id"
	FieldMNCNetwork      = "mnc_network"
	FieldMSISDN          = "msisdn"
	FieldNetworkName     = "network_name"
	FieldOperator        = "operator"
	FieldPaybillNumber   = "paybill_number"
	FieldPinID           = "pin_id"
	FieldRecipientID     = "recipient_id"
	FieldReference       = "reference"
	FieldRequestID       = "request_id"
	FieldResponse        = "response"
	FieldSessionID       = "session_id"
	FieldSourceCurrency  = "source_currency"
	FieldStatus          = "status"
	FieldTargetCurrency  = "target_currency"
	FieldText            = "text"
	FieldTimestamp       = "timestamp"
	FieldTo              = "to"
	FieldTransactionID   = "transaction_id"
)

// PaymentFields covers the checkout payment callback. The gateway has sent
// transactionID, transactionId and transaction_id from different endpoints.
func PaymentFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldAmount, Kind: KindFloat, Paths: [][]string{{"amount"}}},
		{Name: FieldReference, Kind: KindString, Paths: [][]string{{"referenceNumber"}, {"reference_number"}, {"reference"}}},
		{Name: FieldStatus, Kind: KindString, Paths: [][]string{{"status"}}},
		{Name: FieldTimestamp, Kind: KindString, Paths: [][]string{{"timestamp"}}},
		{Name: FieldTransactionID, Kind: KindString, Paths: [][]string{{"transactionID"}, {"transactionId"}, {"transaction_id"}}},
		{Name: FieldMSISDN, Kind: KindString, Paths: [][]string{{"msisdn"}}},
	}
}

// CollectionFields covers the mobile-money collection callback.
func CollectionFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldTransactionID, Kind: KindString, Paths: [][]string{{"transaction_id"}, {"transactionId"}}},
		{Name: FieldAmountCollected, Kind: KindFloat, Paths: [][]string{{"amount_collected"}, {"amount"}}},
		{Name: FieldSourceCurrency, Kind: KindString, Paths: [][]string{{"source_currency"}}},
		{Name: FieldTargetCurrency, Kind: KindString, Paths: [][]string{{"target_currency"}}},
		{Name: FieldMSISDN, Kind: KindString, Paths: [][]string{{"subscriber_msisdn"}, {"msisdn"}}},
		{Name: FieldReference, Kind: KindString, Paths: [][]string{{"reference_number"}, {"referenceNumber"}}},
		{Name: FieldPaybillNumber, Kind: KindString, Paths: [][]string{{"paybill_number"}}},
		{Name: FieldTimestamp, Kind: KindString, Paths: [][]string{{"timestamp"}}},
		{Name: FieldMCCNetwork, Kind: KindString, Paths: [][]string{{"mcc_network"}}},
		{Name: FieldMNCNetwork, Kind: KindString, Paths: [][]string{{"mnc_network"}}},
		{Name: FieldNetworkName, Kind: KindString, Paths: [][]string{{"network_name"}}},
	}
}

// DeliveryReportFields covers the SMS DLR callback.
func DeliveryReportFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldDestAddr, Kind: KindString, Paths: [][]string{{"dest_addr"}, {"destAddr"}}},
		{Name: FieldRequestID, Kind: KindInt, Paths: [][]string{{"request_id"}, {"requestId"}}},
		{Name: FieldStatus, Kind: KindString, Paths: [][]string{{"status"}}},
		{Name: FieldTimestamp, Kind: KindString, Paths: [][]string{{"timestamp"}}},
		{Name: FieldRecipientID, Kind: KindString, Paths: [][]string{{"recipient_id"}, {"recipientId"}}},
	}
}

// InboundMessageFields covers mobile-originated SMS delivered to a shortcode
// or dedicated number.
func InboundMessageFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldFrom, Kind: KindString, Paths: [][]string{{"from"}, {"msisdn"}, {"source_addr"}}},
		{Name: FieldTo, Kind: KindString, Paths: [][]string{{"to"}, {"dest_addr"}, {"shortcode"}}},
		{Name: FieldText, Kind: KindString, Paths: [][]string{{"text"}, {"message"}, {"content"}}},
		{Name: FieldMessageID, Kind: KindString, Paths: [][]string{{"message_id"}, {"messageId"}}},
		{Name: FieldTimestamp, Kind: KindString, Paths: [][]string{{"timestamp"}, {"received_at"}}},
	}
}

// AirtimeFields covers both airtime top-up and disbursement result callbacks;
// the two products share a wire shape.
func AirtimeFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldCode, Kind: KindInt, Paths: [][]string{{"code"}, {"data", "code"}}},
		{Name: FieldMessage, Kind: KindString, Paths: [][]string{{"message"}, {"data", "message"}}},
		{Name: FieldTimestamp, Kind: KindString, Paths: [][]string{{"timestamp"}}},
		{Name: FieldTransactionID, Kind: KindString, Paths: [][]string{{"transaction_id"}, {"transactionId"}}},
		{Name: FieldAmount, Kind: KindFloat, Paths: [][]string{{"amount"}}},
		{Name: FieldDestAddr, Kind: KindString, Paths: [][]string{{"dest_addr"}, {"destAddr"}}},
		{Name: FieldReference, Kind: KindString, Paths: [][]string{{"reference_id"}, {"referenceId"}}},
	}
}

// UssdFields covers the inbound USSD session callback. request_id and the
// subscriber's response arrive nested under "payload".
func UssdFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldCommand, Kind: KindString, Paths: [][]string{{"command"}}},
		{Name: FieldMSISDN, Kind: KindString, Paths: [][]string{{"msisdn"}}},
		{Name: FieldOperator, Kind: KindString, Paths: [][]string{{"operator"}}},
		{Name: FieldSessionID, Kind: KindString, Paths: [][]string{{"session_id"}, {"sessionId"}}},
		{Name: FieldRequestID, Kind: KindInt, Paths: [][]string{{"payload", "request_id"}, {"request_id"}}},
		{Name: FieldResponse, Kind: KindString, Paths: [][]string{{"payload", "response"}, {"response"}}},
	}
}

// OTPFields covers OTP request and verify responses. Code and message appear
// flat at the root, nested under data.message, or (for request responses)
// only a pinId is present.
func OTPFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldCode, Kind: KindInt, Paths: [][]string{{"code"}, {"data", "message", "code"}, {"data", "code"}}},
		{Name: FieldMessage, Kind: KindString, Paths: [][]string{{"message"}, {"data", "message", "message"}}},
		{Name: FieldPinID, Kind: KindString, Paths: [][]string{{"pinId"}, {"data", "pinId"}}},
	}
}

// ResponseFields is the shape used by error classification: just a code and a
// message, probed across every nesting the sub-APIs have been seen to use.
func ResponseFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldCode, Kind: KindInt, Paths: [][]string{
			{"code"},
			{"error_code"},
			{"data", "message", "code"},
			{"data", "code"},
		}},
		{Name: FieldMessage, Kind: KindString, Paths: [][]string{
			{"message"},
			{"error"},
			{"data", "message", "message"},
			{"data", "message"},
		}},
	}
}
