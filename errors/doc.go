/*
Package errors provides semantic error types for the feed-retrieval engine.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound              = errors.New("entity not found")
	    ErrInvalidFeedParameters = errors.New("invalid feed parameters")
	    ErrQueryFailed           = errors.New("query failed")
	    ErrInvalidInput          = errors.New("invalid input")
	)

Usage:

	// Check error type
	rows, err := engine.Timeline(ctx, feed.KindByChannel, viewer, params)
	if err != nil {
	    if errors.IsInvalidFeedParameters(err) {
	        // Caller forgot the channel id; report, never retry
	        return nil, err
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewInvalidFeedParametersError("byChannel", "channel id")
	err := errors.NewQueryError("partition scan", cause)
	err := errors.NewValidationError("limit", "must be between 1 and 100")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
