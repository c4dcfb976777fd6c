package repository

import (
	"context"
	"fmt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrAgentNotFound   = dao.ErrAgentNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	InsertAgent(ctx context.Context, user dao.User, agent dao.Agent) (dao.Agent, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindAgentByUserID(ctx context.Context, userID uint) (dao.Agent, error)
	FindAgentByID(ctx context.Context, id uint) (dao.Agent, error)
	FindAllAgents(ctx context.Context) ([]dao.Agent, error)
	UpdateAgent(ctx context.Context, agent dao.Agent) (dao.Agent, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) agentDaoToDomain(a dao.Agent) domain.Agent {
	agent := domain.Agent{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		NRIC:      a.NRIC,
		AgentCode: a.AgentCode,
		UnitName:  a.UnitName,
		TierID:    a.TierID,
		Status:    domain.AgentStatus(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if a.Tier.ID != 0 {
		tier := tierDaoToDomain(a.Tier)
		agent.Tier = &tier
	}

	return agent
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		Role:     user.Role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.userDaoToDomain(created), nil
}

func (r *UserRepository) CreateAgent(ctx context.Context, user domain.User, agent domain.Agent) (domain.Agent, error) {
	created, err := r.dao.InsertAgent(ctx,
		dao.User{
			Email:    user.Email,
			Password: user.Password,
			Name:     user.Name,
			Role:     user.Role,
		},
		dao.Agent{
			Name:      agent.Name,
			Email:     agent.Email,
			Phone:     agent.Phone,
			NRIC:      agent.NRIC,
			AgentCode: agent.AgentCode,
			UnitName:  agent.UnitName,
			TierID:    agent.TierID,
			Status:    string(domain.AgentActive),
		},
	)
	if err != nil {
		return domain.Agent{}, fmt.Errorf("r.dao.InsertAgent -> %w", err)
	}

	return r.agentDaoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	return r.userDaoToDomain(user), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	return r.userDaoToDomain(user), nil
}

func (r *UserRepository) FindAgentByUserID(ctx context.Context, userID uint) (domain.Agent, error) {
	agent, err := r.dao.FindAgentByUserID(ctx, userID)
	if err != nil {
		return domain.Agent{}, err
	}

	return r.agentDaoToDomain(agent), nil
}

func (r *UserRepository) FindAgentByID(ctx context.Context, id uint) (domain.Agent, error) {
	agent, err := r.dao.FindAgentByID(ctx, id)
	if err != nil {
		return domain.Agent{}, err
	}

	return r.agentDaoToDomain(agent), nil
}

func (r *UserRepository) FindAllAgents(ctx context.Context) ([]domain.Agent, error) {
	agents, err := r.dao.FindAllAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllAgents -> %w", err)
	}

	result := make([]domain.Agent, len(agents))
	for i, a := range agents {
		result[i] = r.agentDaoToDomain(a)
	}

	return result, nil
}

func (r *UserRepository) UpdateAgent(ctx context.Context, agent domain.Agent) (domain.Agent, error) {
	updated, err := r.dao.UpdateAgent(ctx, dao.Agent{
		ID:       agent.ID,
		Name:     agent.Name,
		Phone:    agent.Phone,
		UnitName: agent.UnitName,
		TierID:   agent.TierID,
		Status:   string(agent.Status),
	})
	if err != nil {
		return domain.Agent{}, fmt.Errorf("r.dao.UpdateAgent -> %w", err)
	}

	return r.agentDaoToDomain(updated), nil
}
