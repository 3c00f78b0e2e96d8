package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/outabout/outabout-api/internal/domain"
	"github.com/outabout/outabout-api/internal/repository"
)

type fakeUserRepo struct {
	users  map[string]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]domain.User),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user

	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())

		created, err := svc.Signup(ctx, domain.User{Email: "jo@example.com", Password: "passw0rd1", Name: "Jo"})

		require.NoError(t, err)
		assert.NotEqual(t, "passw0rd1", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("passw0rd1")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())

		_, err := svc.Signup(ctx, domain.User{Email: "jo@example.com", Password: "passw0rd1"})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, domain.User{Email: "jo@example.com", Password: "passw0rd1"})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Signup(ctx, domain.User{Email: "jo@example.com", Password: "passw0rd1", Name: "Jo"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "jo@example.com", "passw0rd1")

		require.NoError(t, err)
		assert.Equal(t, "Jo", user.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "jo@example.com", "nope12345")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "passw0rd1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
