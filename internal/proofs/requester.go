// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package proofs

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jeranaias/zkid-tui/internal/api"
	"github.com/jeranaias/zkid-tui/internal/session"
	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultMaxUsage is applied when the usage limit input is not a
	// number. Zero is a deliberate value meaning unlimited and is kept.
	DefaultMaxUsage = 1

	// DefaultValidDays is applied when the validity input is not a
	// positive number.
	DefaultValidDays = 365
)

// =============================================================================
// REQUESTER
// =============================================================================

// Cache receives successfully generated proofs. Satisfied by
// storage.ProofCache; nil disables caching.
type Cache interface {
	Put(api.Proof) error
}

// Input is the raw form input for a proof request. The numeric fields
// arrive as strings straight from the form and are coerced leniently:
// garbage falls back to the default instead of blocking the request.
type Input struct {
	Type        Type
	Name        string
	Description string
	MaxUsage    string
	ValidDays   string
}

// Requester drives proof generation: it knows which types the service
// offers this account and rejects unavailable ones before any request
// leaves the machine.
type Requester struct {
	client *api.Client
	cache  Cache

	mu    sync.RWMutex
	types []api.ProofTypeInfo
}

// NewRequester creates a requester. cache may be nil.
func NewRequester(client *api.Client, cache Cache) *Requester {
	return &Requester{client: client, cache: cache}
}

// LoadTypes fetches the proof types offered to this account.
func (r *Requester) LoadTypes(ctx context.Context) session.Result {
	types, err := r.client.ListProofTypes(ctx)
	if err != nil {
		return resultFromError(err)
	}
	r.mu.Lock()
	r.types = types
	r.mu.Unlock()
	return session.Result{OK: true}
}

// Types returns the loaded type list.
func (r *Requester) Types() []api.ProofTypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types
}

// Available reports whether the given type can be requested. Before
// LoadTypes has run the answer is optimistic; the service still enforces
// availability on its side.
func (r *Requester) Available(t Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.types) == 0 {
		return true
	}
	for _, info := range r.types {
		if info.Type == string(t) {
			return info.Available
		}
	}
	return false
}

// Request generates a proof. The usage and validity inputs are coerced:
// non-numeric usage falls back to 1 while an explicit 0 means unlimited,
// and validity falls back to 365 days for anything that is not a positive
// number.
func (r *Requester) Request(ctx context.Context, in Input) (*api.Proof, session.Result) {
	if _, known := ParseType(string(in.Type)); !known {
		return nil, session.Result{Err: "Unknown proof type."}
	}
	if !r.Available(in.Type) {
		return nil, session.Result{Err: in.Type.Label() + " is not available for your account."}
	}
	if in.Name == "" {
		return nil, session.Result{Err: "Give the proof a name."}
	}

	req := api.GenerateProofRequest{
		ProofType:   string(in.Type),
		Name:        in.Name,
		Description: in.Description,
		MaxUsage:    util.CoerceNonNegative(in.MaxUsage, DefaultMaxUsage),
		ValidDays:   util.CoercePositive(in.ValidDays, DefaultValidDays),
	}

	proof, err := r.client.GenerateProof(ctx, req)
	if err != nil {
		return nil, resultFromError(err)
	}

	if r.cache != nil {
		if err := r.cache.Put(*proof); err != nil {
			log.Printf("proofs: caching generated proof: %v", err)
		}
	}
	return proof, session.Result{OK: true}
}

// resultFromError maps a client error to a display result.
func resultFromError(err error) session.Result {
	var svcErr *api.Error
	switch {
	case errors.As(err, &svcErr):
		return session.Result{Err: svcErr.UserMessage()}
	case errors.Is(err, api.ErrRateLimited):
		return session.Result{Err: "Too many generation requests. Wait a moment and try again."}
	case errors.Is(err, api.ErrTransport):
		return session.Result{Err: "Could not reach the service. Check your connection and try again."}
	default:
		return session.Result{Err: err.Error()}
	}
}
