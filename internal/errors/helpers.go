package errors

import (
	"errors"
)

func As(err error, target **Error) bool { return errors.As(err, target) }

func Is(err, target error) bool { return errors.Is(err, target) }

func coded(err error) (*Error, bool) {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// GetCode returns the code of the outermost coded error in err's chain.
// A nil err is CodeOK and an uncoded one CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := coded(err); ok {
		return e.Code
	}
	return CodeInternal
}

func GetMeta(err error) map[string]any {
	if e, ok := coded(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the chat-safe message of err, falling back to
// err.Error() for uncoded errors.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := coded(err); ok {
		return e.Message
	}
	return err.Error()
}

// GetCandidates returns the candidate list attached to a match error.
func GetCandidates(err error) []string {
	candidates, _ := GetMeta(err)[MetaCandidates].([]string)
	return candidates
}

func IsNotFound(err error) bool        { return GetCode(err) == CodeNotFound }
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }
func IsAlreadyExists(err error) bool   { return GetCode(err) == CodeAlreadyExists }
func IsInternal(err error) bool        { return GetCode(err) == CodeInternal }
func IsInvalidNotation(err error) bool { return GetCode(err) == CodeInvalidNotation }
func IsAmbiguousMatch(err error) bool  { return GetCode(err) == CodeAmbiguousMatch }
func IsNoMatch(err error) bool         { return GetCode(err) == CodeNoMatch }
