package apperr

import "errors"

// Invalid is returned when the input fails validation.
var Invalid = errors.New("invalid input")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// Unauthorized indicates that the backend rejected the session token.
// Any call that yields it must tear the session down.
var Unauthorized = errors.New("unauthorized")

// Unavailable indicates a transport failure or a backend-side error.
var Unavailable = errors.New("backend unavailable")

// Validation carries a message produced by the backend for a rejected
// submission. It matches Invalid under errors.Is so handlers can treat
// both uniformly while forms still show the backend text.
type Validation struct {
	Message string
}

func (e *Validation) Error() string { return e.Message }

// Is reports Validation as a kind of Invalid.
func (e *Validation) Is(target error) bool { return target == Invalid }

// ValidationMessage extracts the backend message from err, if any.
func ValidationMessage(err error) (string, bool) {
	var v *Validation
	if errors.As(err, &v) {
		return v.Message, true
	}
	return "", false
}
