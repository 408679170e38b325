package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/offerdoc"
)

// Compile-time interface verification.
var _ offerdoc.CredentialService = (*CredentialService)(nil)

const tokenKey = "api_token"

// CredentialService implements offerdoc.CredentialService on the settings table.
type CredentialService struct {
	db *DB
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(db *DB) *CredentialService {
	return &CredentialService{db: db}
}

// SaveToken stores token, replacing any previous one.
func (s *CredentialService) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return offerdoc.Errorf(offerdoc.EINVALID, "token required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, tokenKey, token, time.Now().UTC().Format(time.RFC3339))
	return err
}

// FindToken returns the stored token.
func (s *CredentialService) FindToken(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", tokenKey).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", offerdoc.Errorf(offerdoc.ENOTFOUND, "no token stored; run offerdoc login")
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// DeleteToken removes the stored token.
func (s *CredentialService) DeleteToken(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", tokenKey)
	return err
}
