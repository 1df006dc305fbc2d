// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// TYPES
// =============================================================================

// User is the account as reported by the service.
type User struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	Username      string       `json:"username"`
	WalletAddress string       `json:"walletAddress"`
	KycVerified   bool         `json:"kycVerified"`
	KycStatus     string       `json:"kycStatus"`
	Settings      UserSettings `json:"settings"`
	CreatedAt     string       `json:"createdAt"`
}

// UserSettings are account preferences stored server-side.
type UserSettings struct {
	EmailNotifications bool   `json:"emailNotifications"`
	Theme              string `json:"theme"`
}

// AuthResult is the payload returned by signup and login.
type AuthResult struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// SignUp registers a new account. Username is optional.
func (c *Client) SignUp(ctx context.Context, email, password, username string) (*AuthResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	if username != "" {
		body["username"] = username
	}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn authenticates with email and password.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut notifies the service that the session is over.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me fetches the account behind the current access token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// LinkWallet attaches a wallet address to the account.
func (c *Client) LinkWallet(ctx context.Context, walletAddress string) (*User, error) {
	body := map[string]string{"walletAddress": walletAddress}
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/wallet", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UnlinkWallet detaches the wallet address from the account.
func (c *Client) UnlinkWallet(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodDelete, "/auth/wallet", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
