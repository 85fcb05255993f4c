package source

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies per-source failures. Kinds are surfaced in the
// aggregate response, one per source; a source failure never aborts the
// overall call.
type ErrorKind string

const (
	KindTimeout            ErrorKind = "timeout"
	KindNoCandidates       ErrorKind = "no_candidates"
	KindNoConfidentMatch   ErrorKind = "no_confident_match"
	KindIdentifierNotFound ErrorKind = "identifier_not_found"
	KindMissingPriceData   ErrorKind = "missing_price_data"
	KindSourceUnavailable  ErrorKind = "source_unavailable"
)

type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Classify maps an arbitrary adapter error onto the taxonomy. Typed errors
// pass through, context deadlines become Timeout, everything else is a
// transport-level SourceUnavailable.
func Classify(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Detail: "operation timed out"}
	}
	return &Error{Kind: KindSourceUnavailable, Detail: err.Error()}
}
