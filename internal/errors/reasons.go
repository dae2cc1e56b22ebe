package errors

// Domain reasons raised by the game rules
const (
	ReasonInvalidInput        = "INVALID_INPUT"
	ReasonInvalidPrice        = "INVALID_PRICE"
	ReasonNotActive           = "NOT_ACTIVE"
	ReasonUnauthorized        = "UNAUTHORIZED"
	ReasonInsufficientBalance = "INSUFFICIENT_BALANCE"
	ReasonCapacityExceeded    = "CAPACITY_EXCEEDED"
	ReasonNotReady            = "NOT_READY"
	ReasonAlreadyHatched      = "ALREADY_HATCHED"
	ReasonListed              = "LISTED"
)

// InvalidInputf reports rule input outside its domain (negative level, accuracy above 1, ...)
func InvalidInputf(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...).WithReason(ReasonInvalidInput)
}

// InvalidPricef reports a listing price that is not positive
func InvalidPricef(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...).WithReason(ReasonInvalidPrice)
}

// NotActivef reports a listing that already reached a terminal state
func NotActivef(format string, args ...interface{}) *Error {
	return Newf(CodeFailedPrecondition, format, args...).WithReason(ReasonNotActive)
}

// Unauthorizedf reports a caller acting on something it does not own
func Unauthorizedf(format string, args ...interface{}) *Error {
	return Newf(CodePermissionDenied, format, args...).WithReason(ReasonUnauthorized)
}

// InsufficientBalancef reports a buyer that cannot cover the price
func InsufficientBalancef(format string, args ...interface{}) *Error {
	return Newf(CodeFailedPrecondition, format, args...).WithReason(ReasonInsufficientBalance)
}

// CapacityExceededf reports an owner already holding the maximum number of eggs
func CapacityExceededf(format string, args ...interface{}) *Error {
	return Newf(CodeResourceExhausted, format, args...).WithReason(ReasonCapacityExceeded)
}

// NotReadyf reports an egg hatched before reaching its step threshold
func NotReadyf(format string, args ...interface{}) *Error {
	return Newf(CodeFailedPrecondition, format, args...).WithReason(ReasonNotReady)
}

// AlreadyHatchedf reports an operation on a consumed egg
func AlreadyHatchedf(format string, args ...interface{}) *Error {
	return Newf(CodeFailedPrecondition, format, args...).WithReason(ReasonAlreadyHatched)
}

// Listedf reports an NFT that cannot change while it has an active listing
func Listedf(format string, args ...interface{}) *Error {
	return Newf(CodeFailedPrecondition, format, args...).WithReason(ReasonListed)
}
