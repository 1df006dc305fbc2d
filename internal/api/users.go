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

// UserStats are the dashboard counters for the account.
type UserStats struct {
	TotalProofs    int `json:"totalProofs"`
	ActiveProofs   int `json:"activeProofs"`
	TotalUsage     int `json:"totalUsage"`
	ExpiringProofs int `json:"expiringProofs"`
}

// =============================================================================
// USER ENDPOINTS
// =============================================================================

// UpdateSettings writes the account preferences.
func (c *Client) UpdateSettings(ctx context.Context, settings UserSettings) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/settings", nil, settings, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(ctx, http.MethodPut, "/users/password", nil, body, nil)
}

// GetStats fetches the dashboard counters.
func (c *Client) GetStats(ctx context.Context) (*UserStats, error) {
	var out UserStats
	if err := c.do(ctx, http.MethodGet, "/users/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
