/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	"errors"
	"fmt"
)

// ErrContentNotFound is used to indicate that content at a given address could not be found.
var ErrContentNotFound = errors.New("content not found")

// NewTransient returns a transient error that wraps the given error in order to indicate to the caller that a retry may
// resolve the problem, whereas a non-transient (persistent) error will always fail with the same outcome if retried.
func NewTransient(err error) error {
	return &transientError{err: err}
}

// NewTransientf returns a transient error in order to indicate to the caller that a retry may resolve the problem,
// whereas a non-transient (persistent) error will always fail with the same outcome if retried.
func NewTransientf(format string, a ...interface{}) error {
	return &transientError{err: fmt.Errorf(format, a...)}
}

// IsTransient returns true if the given error is a 'transient' error.
func IsTransient(err error) bool {
	errTransientType := &transientError{}

	return errors.As(err, &errTransientType)
}

// NewBadRequest returns a 'bad request' error that wraps the given error in order to indicate to the caller that
// the request was invalid.
func NewBadRequest(err error) error {
	return &badRequestError{err: err}
}

// NewBadRequestf returns a 'bad request' error in order to indicate to the caller that the request was invalid.
func NewBadRequestf(format string, a ...interface{}) error {
	return &badRequestError{err: fmt.Errorf(format, a...)}
}

// IsBadRequest returns true if the given error is a 'bad request' error.
func IsBadRequest(err error) bool {
	errInvalidRequestType := &badRequestError{}

	return errors.As(err, &errInvalidRequestType)
}

type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return e.err.Error()
}

func (e *transientError) Unwrap() error {
	return e.err
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string {
	return e.err.Error()
}

func (e *badRequestError) Unwrap() error {
	return e.err
}

// RouterError is returned by the Router when a route can't be matched or built:
// an unknown route name, a duplicate registration, or a malformed template.
type RouterError struct {
	Route string
	err   error
}

// NewRouterError returns a new RouterError for the given route name.
func NewRouterError(route string, err error) error {
	return &RouterError{Route: route, err: err}
}

func (e *RouterError) Error() string {
	return fmt.Sprintf("router: route %q: %s", e.Route, e.err.Error())
}

func (e *RouterError) Unwrap() error {
	return e.err
}

// FetchError is returned when retrieving a remote document (actor, object, context) fails.
// It wraps a transient error when the failure looks retryable (network/5xx), so
// IsTransient(fetchErr) reports the right thing without callers needing to know about
// FetchError specifically.
type FetchError struct {
	IRI string
	err error
}

// NewFetchError returns a new FetchError for the given IRI.
func NewFetchError(iri string, err error) error {
	return &FetchError{IRI: iri, err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.IRI, e.err.Error())
}

func (e *FetchError) Unwrap() error {
	return e.err
}

// ValidationError indicates that an activity, object, or request failed a structural
// or semantic check (missing actor, malformed IRI, disallowed type).
type ValidationError struct {
	Reason string
}

// NewValidationError returns a new ValidationError.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// SignatureError indicates that HTTP-signature or Linked Data Signature/proof
// verification failed: unknown key, expired request, digest mismatch, or the
// signing key not owned by the claimed actor.
type SignatureError struct {
	Reason string
	err    error
}

// NewSignatureError returns a new SignatureError.
func NewSignatureError(reason string, err error) error {
	return &SignatureError{Reason: reason, err: err}
}

func (e *SignatureError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("signature: %s: %s", e.Reason, e.err.Error())
	}

	return "signature: " + e.Reason
}

func (e *SignatureError) Unwrap() error {
	return e.err
}
