// Package errors provides the coded error type used across pokechain-api.
//
// Every error carries a Code that maps onto a gRPC status code. Game
// rule failures additionally carry a Reason naming the exact condition, so a
// marketplace caller can tell a sold listing (NOT_ACTIVE) from a buyer short
// on funds (INSUFFICIENT_BALANCE) even though both are FAILED_PRECONDITION.
//
// Creating errors:
//
//	err := errors.NotFoundf("listing %s not found", id)
//	err := errors.NotActivef("listing %s is %s", id, status)
//
// Checking errors:
//
//	if errors.HasReason(err, errors.ReasonCapacityExceeded) {
//	    // owner must hatch an egg first
//	}
//
// Wrapping keeps both code and reason:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load egg")
//	}
//
// Validation:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("owner", input.Owner, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Handlers convert with ToGRPCError; the reason and metadata travel in a
// google.rpc.ErrorInfo detail and are restored by FromGRPCError.
package errors
