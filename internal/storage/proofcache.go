// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/zkid-tui/internal/api"
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS proofs (
	id           TEXT PRIMARY KEY,
	proof_type   TEXT NOT NULL,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	max_usage    INTEGER NOT NULL DEFAULT 1,
	usage_count  INTEGER NOT NULL DEFAULT 0,
	expires_at   TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL DEFAULT '',
	fetched_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_proofs_type ON proofs(proof_type);
CREATE INDEX IF NOT EXISTS idx_proofs_status ON proofs(status);
`

// =============================================================================
// PROOF CACHE
// =============================================================================

// ProofCache is the local SQLite mirror of the account's proofs.
type ProofCache struct {
	db *sql.DB
}

// OpenProofCache opens (or creates) the cache database at the given path.
func OpenProofCache(path string) (*ProofCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open proof cache: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure proof cache: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create proof cache schema: %w", err)
	}
	return &ProofCache{db: db}, nil
}

// Close releases the database handle.
func (c *ProofCache) Close() error {
	return c.db.Close()
}

// Put upserts a single proof record.
func (c *ProofCache) Put(p api.Proof) error {
	_, err := c.db.Exec(`
		INSERT INTO proofs (id, proof_type, name, description, status,
			max_usage, usage_count, expires_at, created_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			proof_type  = excluded.proof_type,
			name        = excluded.name,
			description = excluded.description,
			status      = excluded.status,
			max_usage   = excluded.max_usage,
			usage_count = excluded.usage_count,
			expires_at  = excluded.expires_at,
			created_at  = excluded.created_at,
			fetched_at  = excluded.fetched_at`,
		p.ID, p.ProofType, p.Name, p.Description, p.Status,
		p.MaxUsage, p.UsageCount, p.ExpiresAt, p.CreatedAt,
		time.Now().Unix())
	if err != nil {
		return fmt.Errorf("cache proof %s: %w", p.ID, err)
	}
	return nil
}

// PutAll upserts a fetched page of proofs in one transaction.
func (c *ProofCache) PutAll(proofs []api.Proof) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("cache proofs: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO proofs (id, proof_type, name, description, status,
			max_usage, usage_count, expires_at, created_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			proof_type  = excluded.proof_type,
			name        = excluded.name,
			description = excluded.description,
			status      = excluded.status,
			max_usage   = excluded.max_usage,
			usage_count = excluded.usage_count,
			expires_at  = excluded.expires_at,
			created_at  = excluded.created_at,
			fetched_at  = excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("cache proofs: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, p := range proofs {
		if _, err := stmt.Exec(p.ID, p.ProofType, p.Name, p.Description,
			p.Status, p.MaxUsage, p.UsageCount, p.ExpiresAt, p.CreatedAt, now); err != nil {
			return fmt.Errorf("cache proof %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// List returns cached proofs, newest first, optionally filtered by type
// and status. Empty filter values match everything.
func (c *ProofCache) List(proofType, status string) ([]api.Proof, error) {
	query := `SELECT id, proof_type, name, description, status,
		max_usage, usage_count, expires_at, created_at
		FROM proofs WHERE 1=1`
	var args []any
	if proofType != "" {
		query += " AND proof_type = ?"
		args = append(args, proofType)
	}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cached proofs: %w", err)
	}
	defer rows.Close()

	var out []api.Proof
	for rows.Next() {
		var p api.Proof
		if err := rows.Scan(&p.ID, &p.ProofType, &p.Name, &p.Description,
			&p.Status, &p.MaxUsage, &p.UsageCount, &p.ExpiresAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cached proof: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes one proof from the cache.
func (c *ProofCache) Delete(id string) error {
	if _, err := c.db.Exec(`DELETE FROM proofs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete cached proof %s: %w", id, err)
	}
	return nil
}

// PurgeAll empties the cache. Called on sign-out so no proof metadata
// outlives the session it belongs to.
func (c *ProofCache) PurgeAll() error {
	if _, err := c.db.Exec(`DELETE FROM proofs`); err != nil {
		return fmt.Errorf("purge proof cache: %w", err)
	}
	return nil
}

// Count returns the number of cached proofs.
func (c *ProofCache) Count() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM proofs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cached proofs: %w", err)
	}
	return n, nil
}
