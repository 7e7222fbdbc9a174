package dispatcher

// ValidationError represents a malformed caller request.
// It is always raised before any external service call is made.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ServiceError represents a rejected or failed call to the external
// scheduling or identity service. The cause is kept for unwrapping,
// its string form is surfaced to the caller.
type ServiceError struct {
	Err error
}

func (e ServiceError) Error() string {
	return e.Err.Error()
}

func (e ServiceError) Unwrap() error {
	return e.Err
}
