package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	CreateAgent(ctx context.Context, user domain.User, agent domain.Agent) (domain.Agent, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthTierRepository interface {
	GetTierByID(ctx context.Context, id uint) (domain.Tier, error)
}

type AuthService struct {
	repo     AuthUserRepository
	tierRepo AuthTierRepository
}

func NewAuthService(repo AuthUserRepository, tierRepo AuthTierRepository) *AuthService {
	return &AuthService{
		repo:     repo,
		tierRepo: tierRepo,
	}
}

func (s *AuthService) SignupAdmin(ctx context.Context, user domain.User) (domain.User, error) {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hashed
	user.Role = domain.RoleAdmin

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// SignupAgent creates the user account and the linked agent profile. The
// assigned tier must exist.
func (s *AuthService) SignupAgent(ctx context.Context, user domain.User, agent domain.Agent) (domain.Agent, error) {
	if _, err := s.tierRepo.GetTierByID(ctx, agent.TierID); err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return domain.Agent{}, ErrTierNotFound
		}

		return domain.Agent{}, fmt.Errorf("s.tierRepo.GetTierByID -> %w", err)
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return domain.Agent{}, err
	}
	user.Password = hashed
	user.Role = domain.RoleAgent

	created, err := s.repo.CreateAgent(ctx, user, agent)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.Agent{}, ErrUserEmailExists
		}

		return domain.Agent{}, fmt.Errorf("s.repo.CreateAgent -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
