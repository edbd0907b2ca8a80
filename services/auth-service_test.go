package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/krushnapatil2025/Task-Manager/models"
)

func TestRegister_HashesPasswordAndAssignsRole(t *testing.T) {
	users := &fakeUserStore{}
	svc := NewAuthService(users, "secret-invite")

	member, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Member",
		Email:    "member@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, member.Role)
	require.NotEqual(t, "pass1234", member.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(member.Password), []byte("pass1234")))

	admin, err := svc.Register(context.Background(), RegisterInput{
		Name:             "Admin",
		Email:            "admin@example.com",
		Password:         "pass1234",
		AdminInviteToken: "secret-invite",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
}

func TestRegister_EmptyConfiguredInviteTokenNeverPromotes(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, "")

	// With no invite token configured, a matching empty client value must
	// not grant the admin role.
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:            "member@example.com",
		Password:         "pass1234",
		AdminInviteToken: "",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, user.Role)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	users := &fakeUserStore{}
	svc := NewAuthService(users, "")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "dup@example.com", Password: "pass1234"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "dup@example.com", Password: "other"})
	require.Error(t, err)
	require.True(t, IsValidation(err))
	require.Equal(t, 1, users.inserts)
}

func TestRegister_WrongInviteTokenStaysMember(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, "secret-invite")

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:            "user@example.com",
		Password:         "pass1234",
		AdminInviteToken: "guess",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, user.Role)
}

func TestLogin(t *testing.T) {
	users := &fakeUserStore{}
	svc := NewAuthService(users, "")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "user@example.com", Password: "pass1234"})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "user@example.com", "pass1234")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", user.Email)

	_, err = svc.Login(context.Background(), "user@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "pass1234")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_PartialAndRehash(t *testing.T) {
	users := &fakeUserStore{}
	svc := NewAuthService(users, "")

	created, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Original",
		Email:    "user@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)

	principal := models.Principal{ID: created.ID, Role: created.Role}
	updated, err := svc.UpdateProfile(context.Background(), principal, UpdateProfileInput{Name: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "user@example.com", updated.Email)

	_, err = svc.UpdateProfile(context.Background(), principal, UpdateProfileInput{Password: "newpass99"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "user@example.com", "newpass99")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "user@example.com", "pass1234")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
