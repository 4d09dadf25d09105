/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

// Small, repeated log statements get a named helper so call sites (and their
// log levels/messages) stay consistent.

// CloseIteratorError logs a failure to close a store query iterator.
func CloseIteratorError(logger *Log, err error) {
	logger.Warn("Error closing iterator", WithError(err))
}

// CloseResponseBodyError logs a failure to close an HTTP response body.
func CloseResponseBodyError(logger *Log, err error) {
	logger.Warn("Error closing response body", WithError(err))
}

// ReadRequestBodyError logs a failure to read an HTTP request body.
func ReadRequestBodyError(logger *Log, err error) {
	logger.Error("Error reading request body", WithError(err))
}

// WriteResponseBodyError logs a failure to write an HTTP response body.
func WriteResponseBodyError(logger *Log, err error) {
	logger.Error("Error writing response body", WithError(err))
}

// WroteResponse logs a successfully written HTTP response body at debug level.
func WroteResponse(logger *Log, body []byte) {
	logger.Debug("Wrote response", WithResponse(body))
}
