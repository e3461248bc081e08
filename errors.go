package clverify

import (
	"fmt"

	"github.com/go-errors/errors"
)

// Errors returned by the Verifier. They mean that verification could not be
// performed; an invalid but well-formed proof is reported as (false, nil) instead.
// Use errors.Is (from github.com/go-errors/errors) to classify them.
var (
	// ErrMissingField indicates a proof, key or input lacking a required entry.
	ErrMissingField = errors.New("missing field")
	// ErrArithmetic indicates that a value that must be inverted modulo n is not invertible.
	ErrArithmetic = errors.New("value not invertible modulo n")
	// ErrUnsupportedPredicate indicates a predicate kind other than "ge".
	ErrUnsupportedPredicate = errors.New("unsupported predicate type")
	// ErrLengthMismatch indicates that a proof has a different number of schema keys than sub-proofs.
	ErrLengthMismatch = errors.New("number of schema keys does not match number of proofs")
	// ErrInvalidValue indicates a negative number or a duplicated entry.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNonRevocationUnsupported indicates a sub-proof with a non-revocation proof, which cannot be verified.
	ErrNonRevocationUnsupported = errors.New("non-revocation proofs are not supported")
)

func missing(format string, args ...interface{}) error {
	return errors.WrapPrefix(ErrMissingField, fmt.Sprintf(format, args...), 1)
}

func invalid(format string, args ...interface{}) error {
	return errors.WrapPrefix(ErrInvalidValue, fmt.Sprintf(format, args...), 1)
}

func prefix(err error, format string, args ...interface{}) error {
	return errors.WrapPrefix(err, fmt.Sprintf(format, args...), 1)
}
