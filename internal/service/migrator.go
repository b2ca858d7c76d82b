package service

import (
	"context"
	"log/slog"

	"dashdeck/internal/password"
	"dashdeck/internal/repository"
)

// Migrator upgrades legacy plaintext credentials to hashed form. It runs
// once at startup, before the listener accepts traffic, and is safe to
// re-run: an already-hashed row is left untouched.
type Migrator struct {
	users  repository.UserRepository
	hasher *password.Hasher
	log    *slog.Logger
}

// NewMigrator creates a migration pass over the user table.
func NewMigrator(users repository.UserRepository, hasher *password.Hasher, log *slog.Logger) *Migrator {
	return &Migrator{users: users, hasher: hasher, log: log}
}

// Run scans all users and rehashes any credential that does not carry a
// bcrypt prefix. A failure on one row is logged and skipped so a single bad
// row cannot block the rest; only a failure to list at all is returned.
// Plaintext values never reach the logs.
func (m *Migrator) Run(ctx context.Context) error {
	users, err := m.users.List(ctx)
	if err != nil {
		return err
	}

	var migrated, failed int
	for _, user := range users {
		if m.hasher.LooksHashed(user.PasswordHash) {
			continue
		}

		hash, err := m.hasher.Hash(user.PasswordHash)
		if err != nil {
			m.log.Error("migration: hash failed", "id", user.ID, "error", err)
			failed++
			continue
		}
		if err := m.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			m.log.Error("migration: update failed", "id", user.ID, "error", err)
			failed++
			continue
		}
		m.log.Info("migration: rehashed legacy credential", "id", user.ID, "email", user.Email)
		migrated++
	}

	m.log.Info("credential migration pass complete", "scanned", len(users), "migrated", migrated, "failed", failed)
	return nil
}
