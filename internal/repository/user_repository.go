package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "dashdeck/internal/errors"
	"dashdeck/internal/model"
)

// UserRepository defines persistence operations for user credentials.
// The backing table is the single source of truth; nothing is cached.
type UserRepository interface {
	// Create inserts a new user. A unique-index violation on email is
	// surfaced as ErrDuplicateEmail, anything else as StorageError.
	Create(ctx context.Context, user *model.User) error
	// FindByEmail is an exact-match lookup. A miss is (nil, nil); the
	// caller decides what a missing user means.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdatePasswordHash replaces the stored hash and refreshes
	// updated_at. Idempotent.
	UpdatePasswordHash(ctx context.Context, userID uint, newHash string) error
	// List loads every user eagerly. Only the migration pass uses it;
	// fine at dashboard scale, a scan at any other.
	List(ctx context.Context) ([]model.User, error)
	// Upsert inserts or overwrites the password of an existing email.
	// Reserved for the seed routine; registration must go through Create.
	Upsert(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewUserRepository builds a GORM-backed repository. Every call runs under
// queryTimeout so a stalled database surfaces as StorageError, not a hang.
func NewUserRepository(db *gorm.DB, queryTimeout time.Duration) UserRepository {
	return &userRepository{db: db, queryTimeout: queryTimeout}
}

func (r *userRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateEmail
		}
		return apperrors.NewStorageError("create user", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("find user by email", err)
	}
	return &user, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID uint, newHash string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", newHash).Error
	if err != nil {
		return apperrors.NewStorageError("update password hash", err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, apperrors.NewStorageError("list users", err)
	}
	return users, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *model.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"password": user.PasswordHash, "updated_at": time.Now()}),
		}).
		Create(user).Error
	if err != nil {
		return apperrors.NewStorageError("upsert user", err)
	}
	return nil
}
