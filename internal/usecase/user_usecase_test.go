package usecase

import (
	"context"
	"testing"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserUCFixture() (*UserUseCase, *mockUserRepo, *mockSessionRepo) {
	userRepo := newMockUserRepo()
	sessionRepo := newMockSessionRepo()
	return NewUserUC(userRepo, sessionRepo, nopLogger{}), userRepo, sessionRepo
}

func TestRegister_Validation(t *testing.T) {
	uc, _, _ := newUserUCFixture()

	err := uc.Register(context.Background(), NewRegisterUserReq("", "a", "b", "pass", domain.RoleCustomer))
	assert.ErrorIs(t, err, e.ErrMissingFields)

	err = uc.Register(context.Background(), NewRegisterUserReq("alice", "a", "b", "", domain.RoleCustomer))
	assert.ErrorIs(t, err, e.ErrMissingFields)

	err = uc.Register(context.Background(), NewRegisterUserReq("alice", "a", "b", "pass", "SuperUser"))
	assert.ErrorIs(t, err, e.ErrInvalidRole)
}

func TestRegister_Duplicate(t *testing.T) {
	uc, _, _ := newUserUCFixture()
	req := NewRegisterUserReq("alice", "Alice", "Smith", "secret", domain.RoleCustomer)

	require.NoError(t, uc.Register(context.Background(), req))
	err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, e.ErrUserAlreadyExists)
}

func TestRegister_DoesNotStorePlaintext(t *testing.T) {
	uc, userRepo, _ := newUserUCFixture()

	require.NoError(t, uc.Register(context.Background(), NewRegisterUserReq("alice", "Alice", "Smith", "secret", domain.RoleCustomer)))

	hash, salt, err := userRepo.GetCredentials(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, salt)
	assert.NotEqual(t, "secret", hash)
	assert.Equal(t, hashPassword("secret", salt), hash)
}

func TestLoginResolveLogout(t *testing.T) {
	uc, _, _ := newUserUCFixture()
	require.NoError(t, uc.Register(context.Background(), NewRegisterUserReq("alice", "Alice", "Smith", "secret", domain.RoleManager)))

	sessionID, err := uc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	user, err := uc.Resolve(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleManager, user.Role)

	require.NoError(t, uc.Logout(context.Background(), sessionID))

	_, err = uc.Resolve(context.Background(), sessionID)
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}

func TestLogin_BadCredentials(t *testing.T) {
	uc, _, _ := newUserUCFixture()
	require.NoError(t, uc.Register(context.Background(), NewRegisterUserReq("alice", "Alice", "Smith", "secret", domain.RoleCustomer)))

	_, err := uc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, e.ErrInvalidCredentials)

	// Несуществующий пользователь неотличим от неверного пароля
	_, err = uc.Login(context.Background(), "ghost", "secret")
	assert.ErrorIs(t, err, e.ErrInvalidCredentials)
}

func TestDeleteUser(t *testing.T) {
	uc, _, _ := newUserUCFixture()
	require.NoError(t, uc.Register(context.Background(), NewRegisterUserReq("alice", "Alice", "Smith", "secret", domain.RoleCustomer)))

	require.NoError(t, uc.Delete(context.Background(), "alice"))

	err := uc.Delete(context.Background(), "alice")
	assert.ErrorIs(t, err, e.ErrUserNotFound)

	_, err = uc.GetByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, e.ErrUserNotFound)
}
