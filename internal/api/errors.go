// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// =============================================================================
// ERROR VARIABLES
// =============================================================================

var (
	// ErrAuthRejected indicates the service refused the credentials.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrValidation indicates the request was well-formed HTTP but the
	// service rejected its contents.
	ErrValidation = errors.New("validation failed")

	// ErrTransport indicates the request never produced a usable response
	// (network failure, timeout, or an unparseable body).
	ErrTransport = errors.New("transport failure")

	// ErrSessionExpired indicates token renewal failed and the caller must
	// sign in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrRateLimited indicates the local generation limiter refused to wait.
	ErrRateLimited = errors.New("rate limited")
)

// =============================================================================
// SERVICE ERROR
// =============================================================================

// Error is a rejection reported by the service itself, carrying the HTTP
// status and the human-readable message from the failure envelope.
type Error struct {
	Status    int
	Message   string
	RequestID string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("service error (HTTP %d)", e.Status)
}

// Unwrap maps the HTTP status onto the package sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthRejected
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return ErrValidation
	}
	return nil
}

// UserMessage returns the message suitable for direct display, falling back
// to a generic line when the service supplied none.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "The service could not process the request. Please try again."
}
