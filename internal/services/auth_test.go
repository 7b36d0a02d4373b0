package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CATALOG_BACK-END/internal/apperr"
	"CATALOG_BACK-END/internal/config"
	"CATALOG_BACK-END/internal/dto"
	"CATALOG_BACK-END/internal/logging"
	"CATALOG_BACK-END/internal/middleware"
	"CATALOG_BACK-END/internal/validation"
)

func newAuthService(t *testing.T) (*AuthService, *fakeStore, *middleware.TokenManager) {
	t.Helper()
	store := newFakeStore()
	tokens := middleware.NewTokenManager(config.JWTConfig{Secret: "test", Lifetime: 3600})
	return NewAuthService(store, tokens, validation.New(), logging.Discard()), store, tokens
}

func requireCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %v", err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}

func TestRegister_TokenIdentifiesNewUser(t *testing.T) {
	svc, store, tokens := newAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, &dto.RegisterRequest{Email: " Someone@Example.com ", Password: "1234aA"})
	require.NoError(t, err)

	userID, err := tokens.ValidateToken(token)
	require.NoError(t, err)

	user, err := store.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Someone@Example.com", user.Email)
	assert.NotEqual(t, "1234aA", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "1234aA"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "5678bB"})
	requireCode(t, err, apperr.CodeAccountAlreadyRegistered)
}

func TestRegister_DuplicateCaughtByIntegrityViolation(t *testing.T) {
	svc, store, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "1234aA"})
	require.NoError(t, err)

	store.blindNameLookups = true
	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "1234aA"})
	requireCode(t, err, apperr.CodeAccountAlreadyRegistered)
}

func TestRegister_ValidationFailsBeforeStore(t *testing.T) {
	svc, store, _ := newAuthService(t)

	for _, req := range []dto.RegisterRequest{
		{Email: "bad", Password: "1234aA"},
		{Email: "a@example.com", Password: "123456"},
		{Email: "a@example.com", Password: "12345a"},
		{Email: "a@example.com", Password: "12@Ab"},
	} {
		_, err := svc.Register(context.Background(), &req)
		requireCode(t, err, apperr.CodeValidationError)
	}
	assert.Empty(t, store.Calls())
}

func TestRegister_PasswordTooLongForHash(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "a@example.com",
		Password: "aA1" + strings.Repeat("é", 40),
	})
	requireCode(t, err, apperr.CodeValidationError)
}

func TestRegister_StoreFailureIsInternal(t *testing.T) {
	svc, store, _ := newAuthService(t)
	store.failWith = errors.New("db down")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "a@example.com", Password: "1234aA"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.From(err).Code)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()

	regToken, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "1234aA"})
	require.NoError(t, err)
	registeredID, err := tokens.ValidateToken(regToken)
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@example.com", Password: "1234aA"})
		require.NoError(t, err)
		userID, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, registeredID, userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		token, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@example.com", Password: "1234aB"})
		requireCode(t, err, apperr.CodeInvalidLoginCredentials)
		assert.Empty(t, token)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "b@example.com", Password: "1234aA"})
		requireCode(t, err, apperr.CodeInvalidLoginCredentials)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@example.com"})
		requireCode(t, err, apperr.CodeValidationError)
	})
}

func TestLoginExternal_CreatesOnceThenReuses(t *testing.T) {
	svc, store, tokens := newAuthService(t)
	ctx := context.Background()

	first, err := svc.LoginExternal(ctx, "g@example.com")
	require.NoError(t, err)
	second, err := svc.LoginExternal(ctx, "g@example.com")
	require.NoError(t, err)

	a, err := tokens.ValidateToken(first)
	require.NoError(t, err)
	b, err := tokens.ValidateToken(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	creates := 0
	for _, c := range store.Calls() {
		if c == "CreateUser" {
			creates++
		}
	}
	assert.Equal(t, 1, creates)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "g@example.com", Password: "1234aA"})
	requireCode(t, err, apperr.CodeInvalidLoginCredentials)
}

func TestLoginExternal_ConcurrentCreateUsesWinner(t *testing.T) {
	svc, store, tokens := newAuthService(t)
	ctx := context.Background()

	existing, err := store.CreateUser(ctx, "g@example.com", "hash")
	require.NoError(t, err)

	// first lookup misses, insert collides, second lookup finds the row
	store.missLookups = 1
	token, err := svc.LoginExternal(ctx, "g@example.com")
	require.NoError(t, err)
	userID, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, userID)
}
