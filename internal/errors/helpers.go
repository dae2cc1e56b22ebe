package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func find(err error) (*Error, bool) {
	var customErr *Error
	if err == nil || !errors.As(err, &customErr) {
		return nil, false
	}
	return customErr, true
}

// GetCode extracts the code; nil is OK and foreign errors are Internal
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if customErr, ok := find(err); ok {
		return customErr.Code
	}
	return CodeInternal
}

// GetReason extracts the domain reason, empty when there is none
func GetReason(err error) string {
	if customErr, ok := find(err); ok {
		return customErr.Reason
	}
	return ""
}

// HasReason checks if an error carries the given domain reason
func HasReason(err error, reason string) bool {
	return err != nil && GetReason(err) == reason
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	if customErr, ok := find(err); ok {
		return customErr.Meta
	}
	return nil
}

// GetMessage extracts the caller-facing message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if customErr, ok := find(err); ok {
		return customErr.Message
	}
	return err.Error()
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return GetCode(err) == CodePermissionDenied
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsResourceExhausted checks if an error is a resource exhausted error
func IsResourceExhausted(err error) bool {
	return GetCode(err) == CodeResourceExhausted
}

// IsFailedPrecondition checks if an error is a failed precondition error
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsAborted reports a lost concurrency race; the caller may retry
func IsAborted(err error) bool {
	return GetCode(err) == CodeAborted
}
