package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeInternal           Code = "INTERNAL"

	// CodeInvalidNotation marks a token that is not dice notation.
	CodeInvalidNotation Code = "INVALID_NOTATION"
	// CodeAmbiguousMatch marks a prefix shared by more than one candidate.
	CodeAmbiguousMatch Code = "AMBIGUOUS_MATCH"
	// CodeNoMatch marks a prefix or value no candidate accepts.
	CodeNoMatch Code = "NO_MATCH"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// UserFacing reports whether errors with this code carry a message meant
// for the person issuing a command.
func (c Code) UserFacing() bool {
	switch c {
	case CodeInternal, CodeUnavailable, CodeOK:
		return false
	default:
		return true
	}
}
