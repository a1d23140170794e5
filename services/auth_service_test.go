package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
)

type fakeUserRepo struct {
	nextID int
	users  map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.Username]; ok {
		return repositories.ErrUserUsernameConflict
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.Username]; !ok {
		return repositories.ErrUserNotFound
	}
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) Deactivate(_ context.Context, id int) error {
	for _, user := range r.users {
		if user.ID == id {
			user.IsActive = false
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		Username: "organizador",
		Password: "segredo123",
		FullName: "Organizador Geral",
		Email:    "org@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RolePublic, user.Role)
	assert.Empty(t, user.PasswordHash)

	logged, err := service.Login(ctx, LoginInput{Username: "organizador", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "curto", Password: "12345", FullName: "Curto", Email: "c@example.com",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	input := RegisterInput{
		Username: "repetido", Password: "senha123", FullName: "Primeiro", Email: "um@example.com",
	}
	_, err := service.Register(ctx, input)
	require.NoError(t, err)

	input.Email = "dois@example.com"
	_, err = service.Register(ctx, input)
	assert.ErrorIs(t, err, ErrUsernameConflict)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{
		Username: "alguem", Password: "senha123", FullName: "Alguém", Email: "a@example.com",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, LoginInput{Username: "alguem", Password: "errada"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, LoginInput{Username: "ninguem", Password: "senha123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
