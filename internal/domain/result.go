package domain

// Result is the status envelope shared by all broker operations. Commands
// return only this (CQS); queries embed it alongside their data.
//
// Err optionally carries the underlying cause for transport-level status
// mapping. It is never serialized.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// OK returns a successful Result.
func OK() Result {
	return Result{Success: true, Message: "success"}
}

// Fail returns a failed Result carrying err's message (or the message of the
// wrapped AppError when there is one).
func Fail(err error) Result {
	msg := "internal error"
	if appErr, ok := AsAppError(err); ok && appErr.Message != "" {
		msg = appErr.Message
	} else if err != nil {
		msg = err.Error()
	}
	return Result{Success: false, Message: msg, Err: err}
}

// ListResult is the envelope for list queries: the requested window of items
// plus the total number of records matching the filters.
type ListResult[T any] struct {
	Result
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
}

// ItemResult is the envelope for single-record queries.
type ItemResult[T any] struct {
	Result
	Item *T `json:"item"`
}
