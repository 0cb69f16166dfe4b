package route

// ValidationError reports missing, malformed, or out-of-range input.
// Handlers map it to HTTP 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthorizationError reports an owner mismatch on a mutation.
// Handlers map it to HTTP 403.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// NotFoundError reports an unknown identifier. Handlers map it to
// HTTP 404.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }
