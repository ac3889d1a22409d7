package services_test

import (
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/services"
	"github.com/stretchr/testify/require"
)

func TestLoginAndRefresh(t *testing.T) {
	setupDB(t)
	users := services.NewUserService()
	svc := services.NewAuthService()

	_, err := users.Create(services.UserInput{
		Name: "Ana", Email: "ana@local", Password: "secret1234", Role: "employee",
	})
	require.NoError(t, err)

	tokens, err := svc.Login("ana@local", "secret1234")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, models.RoleEmployee, tokens.User.Role)

	refreshed, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.Equal(t, tokens.User.ID, refreshed.User.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	setupDB(t)
	users := services.NewUserService()
	svc := services.NewAuthService()

	_, err := users.Create(services.UserInput{
		Name: "Ana", Email: "ana@local", Password: "secret1234",
	})
	require.NoError(t, err)

	// Wrong password and unknown email look identical to the caller.
	_, err = svc.Login("ana@local", "wrong-password")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login("nobody@local", "secret1234")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	setupDB(t)
	users := services.NewUserService()
	svc := services.NewAuthService()

	_, err := users.Create(services.UserInput{
		Name: "Ana", Email: "ana@local", Password: "secret1234",
	})
	require.NoError(t, err)

	tokens, err := svc.Login("ana@local", "secret1234")
	require.NoError(t, err)

	// Both tokens verify against the same secret; only the token_type
	// claim separates them, so an access token must not refresh.
	_, err = svc.Refresh(tokens.AccessToken)
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	_, err := svc.Refresh("not-a-jwt")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}
