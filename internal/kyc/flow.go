// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kyc drives the identity verification flow.
//
// The flow is a strictly forward state machine:
//
//	start -> document -> liveness -> complete
//
// Steps never run out of order and never repeat within one flow. An
// account that is already verified short-circuits straight to complete
// without touching the service.
package kyc

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/session"
)

// =============================================================================
// STEPS
// =============================================================================

// Step is the flow position.
type Step int

const (
	// StepStart is the initial position before a session is opened.
	StepStart Step = iota

	// StepDocument awaits the identity document upload.
	StepDocument

	// StepLiveness awaits the liveness confirmation.
	StepLiveness

	// StepComplete is the terminal position.
	StepComplete
)

// String returns the step name for logging and the progress bar.
func (s Step) String() string {
	switch s {
	case StepStart:
		return "start"
	case StepDocument:
		return "document"
	case StepLiveness:
		return "liveness"
	case StepComplete:
		return "complete"
	}
	return "unknown"
}

// Steps lists the flow positions in order, for rendering progress.
func Steps() []Step {
	return []Step{StepStart, StepDocument, StepLiveness, StepComplete}
}

// =============================================================================
// FLOW
// =============================================================================

// Flow is one pass through identity verification. Create a new Flow per
// attempt; a finished or abandoned flow is not reused.
type Flow struct {
	client  *api.Client
	session *session.Manager

	mu        sync.Mutex
	step      Step
	sessionID string
}

// NewFlow creates a flow at the start position.
func NewFlow(client *api.Client, sess *session.Manager) *Flow {
	return &Flow{client: client, session: sess, step: StepStart}
}

// Step returns the current flow position.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Begin opens a verification session and advances to the document step.
// If the account is already verified there is nothing to do: the flow
// jumps directly to complete.
func (f *Flow) Begin(ctx context.Context) session.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepStart {
		return outOfOrder(f.step)
	}
	if f.session.KycVerified() {
		f.step = StepComplete
		return session.Result{OK: true}
	}

	ks, err := f.client.StartKycSession(ctx)
	if err != nil {
		return failure(err)
	}
	f.sessionID = ks.ID
	f.step = StepDocument
	log.Printf("kyc: session %s opened", ks.ID)
	return session.Result{OK: true}
}

// SubmitDocument uploads the identity document and advances to liveness.
// Missing fields are rejected locally before any upload starts.
func (f *Flow) SubmitDocument(ctx context.Context, doc api.DocumentSubmission) session.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepDocument {
		return outOfOrder(f.step)
	}
	if doc.FrontImagePath == "" {
		return session.Result{Err: "Capture the document image before continuing."}
	}
	if doc.Type == "" || doc.Country == "" {
		return session.Result{Err: "Select the document type and issuing country."}
	}

	if err := f.client.SubmitKycDocument(ctx, f.sessionID, doc); err != nil {
		return failure(err)
	}
	f.step = StepLiveness
	return session.Result{OK: true}
}

// FinishLiveness records the passed liveness check, finalizes the session,
// and refreshes the user so the new verified status is visible everywhere.
// The flow only reaches complete when both service calls succeed.
func (f *Flow) FinishLiveness(ctx context.Context) session.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepLiveness {
		return outOfOrder(f.step)
	}

	if err := f.client.CompleteKycLiveness(ctx, f.sessionID); err != nil {
		return failure(err)
	}
	if err := f.client.CompleteKycSession(ctx, f.sessionID); err != nil {
		return failure(err)
	}
	f.step = StepComplete

	if res := f.session.RefreshUser(ctx); !res.OK {
		// Verification succeeded server-side; the stale local user is a
		// display problem only and resolves on the next refresh.
		log.Printf("kyc: user refresh after verification failed: %s", res.Err)
	}
	return session.Result{OK: true}
}

// =============================================================================
// HELPERS
// =============================================================================

// outOfOrder reports a step invoked from the wrong position.
func outOfOrder(current Step) session.Result {
	return session.Result{
		Err: "Verification is at the " + current.String() + " step; restart the flow to continue.",
	}
}

// failure maps a client error to a display result.
func failure(err error) session.Result {
	var svcErr *api.Error
	switch {
	case errors.As(err, &svcErr):
		return session.Result{Err: svcErr.UserMessage()}
	case errors.Is(err, api.ErrTransport):
		return session.Result{Err: "Could not reach the service. Check your connection and try again."}
	default:
		return session.Result{Err: "Verification could not continue: " + err.Error()}
	}
}
