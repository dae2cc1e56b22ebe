package errors

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain identifies errors raised by this service in ErrorInfo details
const ErrorDomain = "pokechain.api"

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	// Check if it's already a gRPC status error
	if _, ok := status.FromError(err); ok {
		return err
	}

	// Check if it's our custom error
	var customErr *Error
	if As(err, &customErr) {
		st := status.New(customErr.Code.GRPCCode(), customErr.Message)

		if customErr.Reason != "" || len(customErr.Meta) > 0 {
			info := &errdetails.ErrorInfo{
				Reason:   customErr.Reason,
				Domain:   ErrorDomain,
				Metadata: stringifyMeta(customErr.Meta),
			}
			if withDetails, err := st.WithDetails(info); err == nil {
				st = withDetails
			}
		}

		return st.Err()
	}

	// Default to internal error
	return status.Error(codes.Internal, err.Error())
}

// FromGRPCError converts a gRPC error to our custom error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	code := CodeFromGRPC(st.Code())

	// Create base error
	customErr := &Error{
		Code:    code,
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		customErr.Reason = info.GetReason()
		if len(info.GetMetadata()) > 0 {
			customErr.Meta = make(map[string]interface{}, len(info.GetMetadata()))
			for k, v := range info.GetMetadata() {
				customErr.Meta[k] = v
			}
		}
		break
	}

	return customErr
}

func stringifyMeta(meta map[string]interface{}) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = fmt.Sprint(v)
	}
	return out
}
