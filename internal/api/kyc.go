// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// =============================================================================
// TYPES
// =============================================================================

// KycSession identifies a server-side verification session.
type KycSession struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expiresAt"`
}

// KycStatus is the account's verification state.
type KycStatus struct {
	Verified   bool   `json:"verified"`
	Status     string `json:"status"`
	VerifiedAt string `json:"verifiedAt"`
}

// DocumentSubmission describes an identity document upload.
type DocumentSubmission struct {
	// Type is the document kind, e.g. "passport" or "drivers_license".
	Type string

	// Country is the issuing country code.
	Country string

	// FrontImagePath is the local path to the captured front image.
	FrontImagePath string
}

// =============================================================================
// KYC ENDPOINTS
// =============================================================================

// StartKycSession opens a new verification session.
func (c *Client) StartKycSession(ctx context.Context) (*KycSession, error) {
	var out struct {
		Session KycSession `json:"session"`
	}
	if err := c.do(ctx, http.MethodPost, "/kyc/session", nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out.Session, nil
}

// SubmitKycDocument uploads the identity document as multipart form data.
func (c *Client) SubmitKycDocument(ctx context.Context, sessionID string, doc DocumentSubmission) error {
	image, err := os.ReadFile(doc.FrontImagePath)
	if err != nil {
		return fmt.Errorf("read document image: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("documentType", doc.Type); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if err := w.WriteField("documentCountry", doc.Country); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	part, err := w.CreateFormFile("frontImage", filepath.Base(doc.FrontImagePath))
	if err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}

	// The body is buffered up front so the renew-once resubmit can replay it.
	payload := buf.Bytes()
	contentType := w.FormDataContentType()
	build := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.endpoint("/kyc/session/"+sessionID+"/document", nil),
			bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}
	return c.send(ctx, build, nil)
}

// CompleteKycLiveness marks the liveness check as passed.
func (c *Client) CompleteKycLiveness(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/kyc/session/"+sessionID+"/liveness", nil, struct{}{}, nil)
}

// CompleteKycSession finalizes the verification session.
func (c *Client) CompleteKycSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/kyc/session/"+sessionID+"/complete", nil, nil, nil)
}

// GetKycStatus fetches the account's verification state.
func (c *Client) GetKycStatus(ctx context.Context) (*KycStatus, error) {
	var out KycStatus
	if err := c.do(ctx, http.MethodGet, "/kyc/status", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
