// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// ProofTypeInfo describes one proof kind the service can generate.
type ProofTypeInfo struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// Proof is a generated zero-knowledge proof record.
type Proof struct {
	ID          string `json:"id"`
	ProofType   string `json:"proofType"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	MaxUsage    int    `json:"maxUsage"`
	UsageCount  int    `json:"usageCount"`
	ExpiresAt   string `json:"expiresAt"`
	CreatedAt   string `json:"createdAt"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// ProofList is one page of proofs.
type ProofList struct {
	Proofs     []Proof    `json:"proofs"`
	Pagination Pagination `json:"pagination"`
}

// ProofListFilter narrows a proof listing. Zero values mean no filter.
type ProofListFilter struct {
	Page      int
	Limit     int
	ProofType string
	Status    string
}

// GenerateProofRequest is the wire payload for proof generation.
type GenerateProofRequest struct {
	ProofType   string `json:"proofType"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxUsage    int    `json:"maxUsage"`
	ValidDays   int    `json:"validDays"`
}

// =============================================================================
// PROOF ENDPOINTS
// =============================================================================

// ListProofTypes fetches the proof kinds available to this account.
func (c *Client) ListProofTypes(ctx context.Context) ([]ProofTypeInfo, error) {
	var out struct {
		ProofTypes []ProofTypeInfo `json:"proofTypes"`
	}
	if err := c.do(ctx, http.MethodGet, "/proofs/types", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.ProofTypes, nil
}

// ListProofs fetches one page of the account's proofs.
func (c *Client) ListProofs(ctx context.Context, filter ProofListFilter) (*ProofList, error) {
	query := url.Values{}
	if filter.Page > 0 {
		query.Set("page", util.IntToString(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", util.IntToString(filter.Limit))
	}
	if filter.ProofType != "" {
		query.Set("proofType", filter.ProofType)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var out ProofList
	if err := c.do(ctx, http.MethodGet, "/proofs", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateProof requests a new proof. Generation is throttled locally so a
// stuck retry loop in the UI cannot hammer the proving service.
func (c *Client) GenerateProof(ctx context.Context, req GenerateProofRequest) (*Proof, error) {
	if err := c.genLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	var out struct {
		Proof Proof `json:"proof"`
	}
	if err := c.do(ctx, http.MethodPost, "/proofs/generate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out.Proof, nil
}

// GetProof fetches a single proof by ID.
func (c *Client) GetProof(ctx context.Context, id string) (*Proof, error) {
	var out struct {
		Proof Proof `json:"proof"`
	}
	if err := c.do(ctx, http.MethodGet, "/proofs/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Proof, nil
}

// ExportProof fetches the shareable proof payload for a single proof.
func (c *Client) ExportProof(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/proofs/"+id+"/export", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProof revokes and removes a proof.
func (c *Client) DeleteProof(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/proofs/"+id, nil, nil, nil)
}
