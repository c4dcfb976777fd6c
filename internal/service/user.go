package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

var (
	ErrUserNotFound  = repository.ErrUserNotFound
	ErrAgentNotFound = repository.ErrAgentNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAgentByUserID(ctx context.Context, userID uint) (domain.Agent, error)
	FindAgentByID(ctx context.Context, id uint) (domain.Agent, error)
	FindAllAgents(ctx context.Context) ([]domain.Agent, error)
	UpdateAgent(ctx context.Context, agent domain.Agent) (domain.Agent, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetAgentByUserID(ctx context.Context, userID uint) (domain.Agent, error) {
	agent, err := s.repo.FindAgentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return domain.Agent{}, ErrAgentNotFound
		}

		return domain.Agent{}, fmt.Errorf("s.repo.FindAgentByUserID -> %w", err)
	}

	return agent, nil
}

func (s *UserService) GetAgent(ctx context.Context, id uint) (domain.Agent, error) {
	agent, err := s.repo.FindAgentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return domain.Agent{}, ErrAgentNotFound
		}

		return domain.Agent{}, fmt.Errorf("s.repo.FindAgentByID -> %w", err)
	}

	return agent, nil
}

func (s *UserService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	agents, err := s.repo.FindAllAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllAgents -> %w", err)
	}

	return agents, nil
}

func (s *UserService) UpdateAgent(ctx context.Context, agent domain.Agent) (domain.Agent, error) {
	updated, err := s.repo.UpdateAgent(ctx, agent)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return domain.Agent{}, ErrAgentNotFound
		}

		return domain.Agent{}, fmt.Errorf("s.repo.UpdateAgent -> %w", err)
	}

	return updated, nil
}
