package subtle

import (
	"errors"
	"fmt"
)

// ErrKind is the engine's internal failure taxonomy. It maps onto the
// DOM error names a caller ultimately observes; see DOMName.
type ErrKind int

const (
	// KindNotSupported covers unknown algorithms, unsupported curves,
	// and formats the dispatcher recognizes but does not implement.
	KindNotSupported ErrKind = iota
	// KindInvalidAccess covers algorithm/key mismatches, missing
	// usages, wrong key types, and non-extractable exports.
	KindInvalidAccess
	// KindSyntax covers empty-usage violations and extractability
	// rule violations (HKDF/PBKDF2 must be non-extractable).
	KindSyntax
	// KindData covers malformed JWK/PKCS8/SPKI and bad key lengths
	// discovered at import time.
	KindData
	// KindOperation covers bad parameter values discovered while
	// running an operation (iv length, iterations=0, length%8!=0).
	KindOperation
	// KindType covers malformed caller input shapes.
	KindType
)

func (k ErrKind) String() string {
	switch k {
	case KindNotSupported:
		return "NotSupportedError"
	case KindInvalidAccess:
		return "InvalidAccessError"
	case KindSyntax:
		return "SyntaxError"
	case KindData:
		return "DataError"
	case KindOperation:
		return "OperationError"
	case KindType:
		return "TypeError"
	default:
		return "Error"
	}
}

// kindedError is the concrete error type WithKind attaches to an error
// chain. Callers never construct it directly.
type kindedError struct {
	kind ErrKind
	err  error
}

func (e *kindedError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.err.Error())
}

func (e *kindedError) Unwrap() error { return e.err }

// HasKind is implemented by any error carrying a DOM error kind.
type HasKind interface {
	Kind() ErrKind
}

func (e *kindedError) Kind() ErrKind { return e.kind }

// WithKind wraps err so that KindOf can recover kind later, mirroring
// the attach-metadata-to-an-error-chain idiom used for hints and exit
// codes elsewhere in the ecosystem.
func WithKind(err error, kind ErrKind) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: kind, err: err}
}

// Errorf builds a new error carrying kind directly from a format string.
func Errorf(kind ErrKind, format string, args ...any) error {
	return &kindedError{kind: kind, err: fmt.Errorf(format, args...)}
}

// KindOf walks err's chain for an attached ErrKind, defaulting to
// KindOperation (the DOM catch-all) when none is found.
func KindOf(err error) ErrKind {
	var ke *kindedError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindOperation
}

// DOMName returns the DOM exception name a caller should observe for err.
func DOMName(err error) string {
	return KindOf(err).String()
}
