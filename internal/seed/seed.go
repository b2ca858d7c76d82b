// Package seed upserts known demo accounts. It is an explicit routine,
// separate from the credential migration pass and from server boot: the
// server only runs it behind SEED_DEMO_USERS, and cmd/seed runs it on demand.
package seed

import (
	"context"
	"log/slog"

	"dashdeck/internal/model"
	"dashdeck/internal/password"
	"dashdeck/internal/repository"
)

// Account is a demo credential pair. Plaintext lives only here and in the
// environment of whoever invokes the seeder; it is hashed before it is
// written and never logged.
type Account struct {
	Email    string
	Password string
}

// DefaultAccounts are the demo logins the dashboard ships with.
func DefaultAccounts() []Account {
	return []Account{
		{Email: "test@example.com", Password: "password123"},
		{Email: "joy@gmail.com", Password: "12345678"},
	}
}

// Run upserts the given accounts, overwriting the stored password for an
// email that already exists. Returns the number of accounts written.
func Run(ctx context.Context, users repository.UserRepository, hasher *password.Hasher, log *slog.Logger, accounts []Account) (int, error) {
	var written int
	for _, account := range accounts {
		hash, err := hasher.Hash(account.Password)
		if err != nil {
			return written, err
		}
		user := &model.User{Email: account.Email, PasswordHash: hash}
		if err := users.Upsert(ctx, user); err != nil {
			return written, err
		}
		log.Info("seeded demo account", "email", account.Email)
		written++
	}
	return written, nil
}
