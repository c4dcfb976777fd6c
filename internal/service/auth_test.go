package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

type fakeUserStore struct {
	users  map[string]*domain.User // keyed by email
	agents []domain.Agent
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

func (f *fakeUserStore) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = &user

	return user, nil
}

func (f *fakeUserStore) CreateAgent(_ context.Context, user domain.User, agent domain.Agent) (domain.Agent, error) {
	created, err := f.Create(context.Background(), user)
	if err != nil {
		return domain.Agent{}, err
	}
	agent.ID = f.nextID
	f.nextID++
	agent.UserID = created.ID
	f.agents = append(f.agents, agent)

	return agent, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return *user, nil
}

func TestAuthService_SignupAdmin(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	tiers := &fakeTierStore{tiers: map[uint]domain.Tier{}}
	svc := NewAuthService(store, tiers)

	user, err := svc.SignupAdmin(ctx, domain.User{
		Email:    "admin@example.com",
		Password: "sup3rsecret",
		Name:     "Admin",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("sup3rsecret")))

	_, err = svc.SignupAdmin(ctx, domain.User{Email: "admin@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_SignupAgent(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	tiers := &fakeTierStore{tiers: map[uint]domain.Tier{
		1: {ID: 1, Name: "Silver"},
	}}
	svc := NewAuthService(store, tiers)

	t.Run("unknown tier is rejected", func(t *testing.T) {
		_, err := svc.SignupAgent(ctx,
			domain.User{Email: "agent@example.com", Password: "sup3rsecret"},
			domain.Agent{TierID: 99})

		assert.ErrorIs(t, err, ErrTierNotFound)
	})

	t.Run("creates user and linked profile", func(t *testing.T) {
		agent, err := svc.SignupAgent(ctx,
			domain.User{Email: "agent@example.com", Password: "sup3rsecret", Name: "Agent"},
			domain.Agent{TierID: 1, NRIC: "S1234567A", AgentCode: "AG001"})

		require.NoError(t, err)
		assert.NotZero(t, agent.UserID)
		assert.Equal(t, domain.RoleAgent, store.users["agent@example.com"].Role)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := NewAuthService(store, &fakeTierStore{})

	_, err := svc.SignupAdmin(ctx, domain.User{
		Email:    "admin@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "admin@example.com", "sup3rsecret")

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin@example.com", "nope")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "sup3rsecret")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
