package domain

// Product identifies one of the gateway's sub-APIs. Response code spaces are
// per-product: SMS code 100 and airtime code 100 both mean success but are
// otherwise unrelated values.
type Product string

const (
	ProductSMS          Product = "sms"
	ProductAirtime      Product = "airtime"
	ProductDisbursement Product = "disbursement"
	ProductOTP          Product = "otp"
	ProductPayment      Product = "payment"
)

// CodeClass is the success/pending/failure classification of a response code.
type CodeClass int

const (
	ClassSuccess CodeClass = iota
	ClassPending
	ClassFailure
)

func (c CodeClass) String() string {
	switch c {
	case ClassSuccess:
		return "success"
	case ClassPending:
		return "pending"
	default:
		return "failure"
	}
}

// ResponseCode is one entry of a product's closed code space.
type ResponseCode struct {
	Product     Product
	Value       int
	Description string
	Class       CodeClass
}

func (c ResponseCode) IsSuccess() bool { return c.Class == ClassSuccess }
func (c ResponseCode) IsPending() bool { return c.Class == ClassPending }
func (c ResponseCode) IsFailure() bool { return c.Class == ClassFailure }

// Well-known code values referenced by predicates and tests.
const (
	CodeSMSSubmitted          = 100
	CodeSMSScheduled          = 101
	CodeSMSInvalidSenderID    = 102
	CodeSMSInvalidDestination = 103
	CodeSMSInsufficientFunds  = 104
	CodeSMSBodyTooLong        = 105

	CodeAirtimeTransferred    = 100
	CodeAirtimePending        = 101
	CodeAirtimeInvalidMSISDN  = 102
	CodeAirtimeNoFloat        = 103
	CodeAirtimeBelowMinimum   = 104
	CodeAirtimeAboveMaximum   = 105

	CodeDisbursementDone          = 100
	CodeDisbursementPending       = 101
	CodeDisbursementInvalidMSISDN = 102
	CodeDisbursementNoBalance     = 103
	CodeDisbursementDuplicateRef  = 104
	CodeDisbursementWalletClosed  = 105

	CodeOTPPinSent          = 100
	CodeOTPValidPin         = 117
	CodeOTPInvalidPin       = 118
	CodeOTPPinExpired       = 119
	CodeOTPAttemptsExceeded = 120

	CodePaymentCompleted    = 100
	CodePaymentPending      = 101
	CodePaymentCancelled    = 102
	CodePaymentRejected     = 103
	CodePaymentAuthFailure  = 104
	CodePaymentBadAmount    = 105
)

// codeTables is the registry. Every entry carries a non-empty description by
// construction; there is no code path that inserts entries at runtime.
var codeTables = map[Product][]ResponseCode{
	ProductSMS: {
		{ProductSMS, CodeSMSSubmitted, "Message submitted successfully", ClassSuccess},
		{ProductSMS, CodeSMSScheduled, "Message scheduled for delivery", ClassPending},
		{ProductSMS, CodeSMSInvalidSenderID, "Invalid sender ID", ClassFailure},
		{ProductSMS, CodeSMSInvalidDestination, "Invalid destination address", ClassFailure},
		{ProductSMS, CodeSMSInsufficientFunds, "Insufficient SMS balance", ClassFailure},
		{ProductSMS, CodeSMSBodyTooLong, "Message body too long", ClassFailure},
	},
	ProductAirtime: {
		{ProductAirtime, CodeAirtimeTransferred, "Airtime transfer successful", ClassSuccess},
		{ProductAirtime, CodeAirtimePending, "Airtime transfer pending confirmation", ClassPending},
		{ProductAirtime, CodeAirtimeInvalidMSISDN, "Invalid phone number", ClassFailure},
		{ProductAirtime, CodeAirtimeNoFloat, "Insufficient airtime float", ClassFailure},
		{ProductAirtime, CodeAirtimeBelowMinimum, "Amount below minimum", ClassFailure},
		{ProductAirtime, CodeAirtimeAboveMaximum, "Amount above maximum", ClassFailure},
	},
	ProductDisbursement: {
		{ProductDisbursement, CodeDisbursementDone, "Disbursement successful", ClassSuccess},
		{ProductDisbursement, CodeDisbursementPending, "Disbursement pending settlement", ClassPending},
		{ProductDisbursement, CodeDisbursementInvalidMSISDN, "Invalid phone number", ClassFailure},
		{ProductDisbursement, CodeDisbursementNoBalance, "Insufficient balance", ClassFailure},
		{ProductDisbursement, CodeDisbursementDuplicateRef, "Duplicate reference number", ClassFailure},
		{ProductDisbursement, CodeDisbursementWalletClosed, "Wallet not active", ClassFailure},
	},
	ProductOTP: {
		{ProductOTP, CodeOTPPinSent, "Pin sent successfully", ClassSuccess},
		{ProductOTP, CodeOTPValidPin, "Valid Pin", ClassSuccess},
		{ProductOTP, CodeOTPInvalidPin, "Invalid Pin", ClassFailure},
		{ProductOTP, CodeOTPPinExpired, "Pin expired", ClassFailure},
		{ProductOTP, CodeOTPAttemptsExceeded, "Verification attempts exceeded", ClassFailure},
	},
	ProductPayment: {
		{ProductPayment, CodePaymentCompleted, "Checkout completed", ClassSuccess},
		{ProductPayment, CodePaymentPending, "Payment pending subscriber approval", ClassPending},
		{ProductPayment, CodePaymentCancelled, "Payment cancelled by subscriber", ClassFailure},
		{ProductPayment, CodePaymentRejected, "Payment rejected by network", ClassFailure},
		{ProductPayment, CodePaymentAuthFailure, "Authentication failure", ClassFailure},
		{ProductPayment, CodePaymentBadAmount, "Invalid transaction amount", ClassFailure},
	},
}

// Classify resolves a raw code within a product's code space. The second
// return is false for unknown codes; callers must treat those as generic
// failures, never as success. Zero means "absent" on the wire and negative
// values are out of range for every product, so neither can resolve.
func Classify(product Product, rawCode int) (ResponseCode, bool) {
	if rawCode <= 0 {
		return ResponseCode{}, false
	}
	for _, rc := range codeTables[product] {
		if rc.Value == rawCode {
			return rc, true
		}
	}
	return ResponseCode{}, false
}

// AllCodes returns the full table for a product. Used by tests and by
// documentation generators; the returned slice must not be mutated.
func AllCodes(product Product) []ResponseCode {
	return codeTables[product]
}

// Products lists every product with a registered code space.
func Products() []Product {
	return []Product{ProductSMS, ProductAirtime, ProductDisbursement, ProductOTP, ProductPayment}
}

// IsInsufficientBalance reports whether this code means the account or wallet
// lacked funds, in whichever product's terms.
func (c ResponseCode) IsInsufficientBalance() bool {
	switch c.Product {
	case ProductSMS:
		return c.Value == CodeSMSInsufficientFunds
	case ProductAirtime:
		return c.Value == CodeAirtimeNoFloat
	case ProductDisbursement:
		return c.Value == CodeDisbursementNoBalance
	}
	return false
}

// IsInvalidPhoneNumber reports whether this code means the destination MSISDN
// was rejected.
func (c ResponseCode) IsInvalidPhoneNumber() bool {
	switch c.Product {
	case ProductSMS:
		return c.Value == CodeSMSInvalidDestination
	case ProductAirtime:
		return c.Value == CodeAirtimeInvalidMSISDN
	case ProductDisbursement:
		return c.Value == CodeDisbursementInvalidMSISDN
	}
	return false
}

// IsAuthFailure reports whether this code means the gateway rejected the
// caller's credentials.
func (c ResponseCode) IsAuthFailure() bool {
	return c.Product == ProductPayment && c.Value == CodePaymentAuthFailure
}
