package artifactcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalogprep/internal/fileutil"
	"catalogprep/internal/textutil"
)

// Key identifies one artifact.
type Key struct {
	Stage       string
	RuleVersion string
	InputHash   string
}

// ID is sha256(stage | rule version | input hash) in hex.
func (k Key) ID() string {
	hasher := sha256.New()
	_, _ = io.WriteString(hasher, k.Stage)
	_, _ = io.WriteString(hasher, "|")
	_, _ = io.WriteString(hasher, k.RuleVersion)
	_, _ = io.WriteString(hasher, "|")
	_, _ = io.WriteString(hasher, k.InputHash)
	return hex.EncodeToString(hasher.Sum(nil))
}

func (k Key) validate() error {
	if strings.TrimSpace(k.Stage) == "" || strings.TrimSpace(k.InputHash) == "" {
		return errors.New("artifact key requires stage and input hash")
	}
	return nil
}

// Entry is one manifest row.
type Entry struct {
	ID          string
	Stage       string
	RuleVersion string
	InputHash   string
	PayloadPath string
	PayloadHash string
	SizeBytes   int64
	Records     int
	CreatedAt   time.Time
	LastUsedAt  *time.Time
}

const entryColumns = `key, stage, rule_version, input_hash, payload_path, payload_hash, size_bytes, records, created_at, last_used_at`

// Lookup returns the entry for key if its payload is present and intact.
// A missing or corrupted payload deletes the row and reports a miss.
func (c *Cache) Lookup(ctx context.Context, key Key) (Entry, bool, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM artifacts WHERE key = ?`, key.ID())
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("lookup artifact: %w", err)
	}
	sum, err := fileutil.HashFile(entry.PayloadPath)
	if err != nil || sum != entry.PayloadHash {
		if _, delErr := c.exec(ctx, `DELETE FROM artifacts WHERE key = ?`, entry.ID); delErr != nil {
			return Entry{}, false, fmt.Errorf("drop stale artifact: %w", delErr)
		}
		_ = os.Remove(entry.PayloadPath)
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Load returns the payload for key. The bool is false on a miss.
func (c *Cache) Load(ctx context.Context, key Key) ([]byte, bool, error) {
	entry, ok, err := c.Lookup(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := os.ReadFile(entry.PayloadPath)
	if err != nil {
		return nil, false, fmt.Errorf("read artifact payload: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := c.exec(ctx, `UPDATE artifacts SET last_used_at = ? WHERE key = ?`, now, entry.ID); err != nil {
		return nil, false, fmt.Errorf("touch artifact: %w", err)
	}
	return data, true, nil
}

// Put stores payload under key, replacing any previous artifact with the
// same key. records is informational.
func (c *Cache) Put(ctx context.Context, key Key, payload []byte, records int) (Entry, error) {
	if err := key.validate(); err != nil {
		return Entry{}, err
	}
	id := key.ID()
	path := filepath.Join(c.dir, fmt.Sprintf("%s-%s.csv", textutil.SanitizeToken(key.Stage), id[:16]))
	if err := fileutil.WriteFileAtomic(path, payload, 0o644); err != nil {
		return Entry{}, fmt.Errorf("write artifact payload: %w", err)
	}
	sum := sha256.Sum256(payload)
	now := time.Now().UTC()
	entry := Entry{
		ID:          id,
		Stage:       key.Stage,
		RuleVersion: key.RuleVersion,
		InputHash:   key.InputHash,
		PayloadPath: path,
		PayloadHash: hex.EncodeToString(sum[:]),
		SizeBytes:   int64(len(payload)),
		Records:     records,
		CreatedAt:   now,
	}
	_, err := c.exec(ctx, `INSERT INTO artifacts (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
		ON CONFLICT(key) DO UPDATE SET
			payload_path = excluded.payload_path,
			payload_hash = excluded.payload_hash,
			size_bytes = excluded.size_bytes,
			records = excluded.records,
			created_at = excluded.created_at,
			last_used_at = NULL`,
		entry.ID, entry.Stage, entry.RuleVersion, entry.InputHash, entry.PayloadPath,
		entry.PayloadHash, entry.SizeBytes, entry.Records, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record artifact: %w", err)
	}
	return entry, nil
}

// List returns every entry ordered by stage then creation time, newest first.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	return c.query(ctx, `SELECT `+entryColumns+` FROM artifacts ORDER BY stage, created_at DESC`)
}

// Invalidate removes every artifact of stage and returns how many were removed.
func (c *Cache) Invalidate(ctx context.Context, stage string) (int, error) {
	entries, err := c.query(ctx, `SELECT `+entryColumns+` FROM artifacts WHERE stage = ?`, stage)
	if err != nil {
		return 0, err
	}
	if _, err := c.exec(ctx, `DELETE FROM artifacts WHERE stage = ?`, stage); err != nil {
		return 0, fmt.Errorf("invalidate %s: %w", stage, err)
	}
	removePayloads(entries)
	return len(entries), nil
}

// Clear removes every artifact.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	entries, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := c.exec(ctx, `DELETE FROM artifacts`); err != nil {
		return 0, fmt.Errorf("clear artifacts: %w", err)
	}
	removePayloads(entries)
	return len(entries), nil
}

func (c *Cache) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		entry     Entry
		createdAt string
		lastUsed  sql.NullString
	)
	if err := s.Scan(&entry.ID, &entry.Stage, &entry.RuleVersion, &entry.InputHash, &entry.PayloadPath,
		&entry.PayloadHash, &entry.SizeBytes, &entry.Records, &createdAt, &lastUsed); err != nil {
		return Entry{}, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = ts
	}
	if lastUsed.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, lastUsed.String); err == nil {
			entry.LastUsedAt = &ts
		}
	}
	return entry, nil
}

func removePayloads(entries []Entry) {
	for _, entry := range entries {
		_ = os.Remove(entry.PayloadPath)
	}
}
