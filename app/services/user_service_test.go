package services_test

import (
	"testing"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/services"
	"github.com/stretchr/testify/require"
)

func TestUserCreateNormalizesRole(t *testing.T) {
	setupDB(t)
	svc := services.NewUserService()

	user, err := svc.Create(services.UserInput{
		Name: "Ana", Email: "ana@local", Password: "secret1234", Role: "Superuser",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleCustomer, user.Role)
	require.NotEqual(t, "secret1234", user.Password, "password must be stored hashed")
}

func TestUserCreateRejectsTakenEmail(t *testing.T) {
	setupDB(t)
	svc := services.NewUserService()

	_, err := svc.Create(services.UserInput{Name: "Ana", Email: "ana@local", Password: "secret1234"})
	require.NoError(t, err)

	_, err = svc.Create(services.UserInput{Name: "Impostor", Email: "ana@local", Password: "secret1234"})
	require.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	setupDB(t)
	svc := services.NewUserService()

	created, err := svc.Create(services.UserInput{Name: "Ana", Email: "ana@local", Password: "secret1234"})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, services.UserInput{
		Name: "Ana Maria", Email: "ana@local", Role: "admin",
	})
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", updated.Name)
	require.Equal(t, models.RoleAdmin, updated.Role)
	require.Equal(t, created.Password, updated.Password)

	// The old password still works.
	_, err = services.NewAuthService().Login("ana@local", "secret1234")
	require.NoError(t, err)
}

func TestUserUpdateRejectsEmailOfAnotherUser(t *testing.T) {
	setupDB(t)
	svc := services.NewUserService()

	_, err := svc.Create(services.UserInput{Name: "Ana", Email: "ana@local", Password: "secret1234"})
	require.NoError(t, err)
	bob, err := svc.Create(services.UserInput{Name: "Bob", Email: "bob@local", Password: "secret1234"})
	require.NoError(t, err)

	_, err = svc.Update(bob.ID, services.UserInput{Name: "Bob", Email: "ana@local"})
	require.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserDelete(t *testing.T) {
	setupDB(t)
	svc := services.NewUserService()

	created, err := svc.Create(services.UserInput{Name: "Ana", Email: "ana@local", Password: "secret1234"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.Find(created.ID)
	require.ErrorIs(t, err, services.ErrNotFound)

	require.ErrorIs(t, svc.Delete(created.ID), services.ErrNotFound)
}
