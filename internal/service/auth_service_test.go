package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "dashdeck/internal/errors"
	"dashdeck/internal/model"
	"dashdeck/internal/password"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID uint, newHash string) error {
	args := m.Called(ctx, userID, newHash)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegisterSuccess(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := password.NewHasher()
	svc := NewAuthService(repo, hasher, testLogger())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// The service must store a hash, never the plaintext.
		return u.Email == "a@b.com" && hasher.LooksHashed(u.PasswordHash)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 42
	}).Return(nil)

	identity, err := svc.Register(context.Background(), "a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.ID)
	assert.Equal(t, "a@b.com", identity.Email)
	repo.AssertExpectations(t)
}

func TestRegisterValidationFailsBeforeStorage(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, password.NewHasher(), testLogger())

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"malformed email", "bad-email", "password1"},
		{"empty email", "", "password1"},
		{"short password", "c@d.com", "short"},
		{"empty password", "c@d.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, password.NewHasher(), testLogger())

	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicateEmail)

	_, err := svc.Register(context.Background(), "a@b.com", "password1")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestRegisterStorageError(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, password.NewHasher(), testLogger())

	storageErr := apperrors.NewStorageError("create user", errors.New("connection refused"))
	repo.On("Create", mock.Anything, mock.Anything).Return(storageErr)

	_, err := svc.Register(context.Background(), "a@b.com", "password1")
	require.Error(t, err)

	var se *apperrors.StorageError
	assert.True(t, errors.As(err, &se))
}

func TestLoginSuccessReturnsSameIdentity(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := password.NewHasher()
	svc := NewAuthService(repo, hasher, testLogger())

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "a@b.com").
		Return(&model.User{ID: 42, Email: "a@b.com", PasswordHash: hash}, nil)

	identity, err := svc.Login(context.Background(), "a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.ID)
	assert.Equal(t, "a@b.com", identity.Email)
}

func TestLoginWrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := password.NewHasher()
	svc := NewAuthService(repo, hasher, testLogger())

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "a@b.com").
		Return(&model.User{ID: 42, Email: "a@b.com", PasswordHash: hash}, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@b.com").Return(nil, nil)

	_, wrongPassErr := svc.Login(context.Background(), "a@b.com", "wrongpass")
	_, unknownErr := svc.Login(context.Background(), "ghost@b.com", "password1")

	assert.ErrorIs(t, wrongPassErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	// Nothing distinguishes which field was wrong.
	assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
}

func TestLoginMissingFields(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, password.NewHasher(), testLogger())

	_, err := svc.Login(context.Background(), "", "password1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Login(context.Background(), "a@b.com", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLoginMalformedStoredHash(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, password.NewHasher(), testLogger())

	repo.On("FindByEmail", mock.Anything, "a@b.com").
		Return(&model.User{ID: 42, Email: "a@b.com", PasswordHash: "garbage"}, nil)

	_, err := svc.Login(context.Background(), "a@b.com", "password1")
	require.Error(t, err)

	// Integrity failure, not a credentials failure: the caller must not be
	// told the stored hash is broken.
	var se *apperrors.StorageError
	assert.True(t, errors.As(err, &se))
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := password.NewHasher()
	svc := NewAuthService(repo, hasher, testLogger())

	var stored *model.User
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*model.User)
		stored.ID = 7
	}).Return(nil)

	registered, err := svc.Register(context.Background(), "a@b.com", "password1")
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "a@b.com").Return(stored, nil)

	loggedIn, err := svc.Login(context.Background(), "a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
}
