package service

import (
	"context"
	"testing"

	"storehub/internal/config"
	"storehub/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong",
	})
	assert.Error(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.Error(t, err)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newAuthFixture()

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	for _, u := range repo.users {
		if u.ID.String() == user.ID {
			u.Active = false
		}
	}

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	assert.Error(t, err)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
