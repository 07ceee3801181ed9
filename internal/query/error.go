package query

// ErrorKind tags an Error with the class of failure it represents, so
// callers can branch on the kind instead of matching message text.
type ErrorKind string

const (
	UnknownTable    ErrorKind = "unknown_table"
	UnknownColumn   ErrorKind = "unknown_column"
	UniqueViolation ErrorKind = "unique_violation"
	ParseError      ErrorKind = "parse_error"
	TypeMismatch    ErrorKind = "type_mismatch"
	Unsupported     ErrorKind = "unsupported"
	Internal        ErrorKind = "internal"
)

// Error is the recoverable error type returned across the query/engine
// boundary. It never carries state mutation with it: by the time an
// Error is returned the database is exactly as it was before the call
// that produced it.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// NewError builds an *Error of the given kind with the given message.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	qe, ok := err.(*Error)
	return ok && qe.Kind == kind
}
