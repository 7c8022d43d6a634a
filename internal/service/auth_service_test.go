package service

import (
	"testing"
	"time"

	"edulearn_backend/internal/config"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	env := newTestEnv(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(env.db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	user, err := auth.Register(RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	// 密码只存哈希
	assert.NotEqual(t, "hunter22", user.Password)

	token, logged, err := auth.Login(LoginRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(RegisterRequest{Name: "A", Email: "dup@example.com", Password: "password"})
	require.NoError(t, err)

	_, err = auth.Register(RegisterRequest{Name: "B", Email: "dup@example.com", Password: "password"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := newAuthService(t)

	_, _, err := auth.Login(LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = auth.Register(RegisterRequest{Name: "A", Email: "a@example.com", Password: "rightpass"})
	require.NoError(t, err)

	_, _, err = auth.Login(LoginRequest{Email: "a@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
