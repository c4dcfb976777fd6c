package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository/dao"
)

var (
	ErrInvitationNotFound    = dao.ErrInvitationNotFound
	ErrInvitationAlreadyUsed = dao.ErrInvitationAlreadyUsed
	ErrQuotaExceeded         = dao.ErrQuotaExceeded
	ErrDuplicateNRIC         = dao.ErrDuplicateNRIC
	ErrDuplicatePhone        = dao.ErrDuplicatePhone
)

type InvitationDAO interface {
	InsertBatch(ctx context.Context, agentID, slotID uint, capacityType string, tokens []string, limitPerSlot int) ([]dao.Invitation, error)
	CountForAgentSlot(ctx context.Context, agentID, slotID uint) (int64, error)
	FindByID(ctx context.Context, id uint) (dao.Invitation, error)
	FindByToken(ctx context.Context, token string) (dao.Invitation, error)
	FindBySlotNRICAndStatus(ctx context.Context, slotID uint, nric, status string) (dao.Invitation, error)
	FindByAgentID(ctx context.Context, agentID uint) ([]dao.Invitation, error)
	FindBySlotID(ctx context.Context, slotID uint) ([]dao.Invitation, error)
	Register(ctx context.Context, id uint, fields dao.RegistrationFields, now time.Time) (dao.Invitation, error)
	MarkExpired(ctx context.Context, id uint) error
	CountCompletedByAgent(ctx context.Context, agentID uint) (int64, error)
}

type InvitationRepository struct {
	dao InvitationDAO
}

func NewInvitationRepository(dao InvitationDAO) *InvitationRepository {
	return &InvitationRepository{
		dao: dao,
	}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func invitationDaoToDomain(i dao.Invitation) domain.Invitation {
	invitation := domain.Invitation{
		ID:           i.ID,
		AgentID:      i.AgentID,
		SlotID:       i.SlotID,
		CapacityType: domain.CapacityType(i.CapacityType),
		UniqueToken:  i.UniqueToken,
		Status:       domain.InvitationStatus(i.Status),

		InviteeName:       strVal(i.InviteeName),
		InviteeNRIC:       strVal(i.InviteeNRIC),
		InviteePhone:      strVal(i.InviteePhone),
		InviteeEmail:      strVal(i.InviteeEmail),
		InviteeOccupation: strVal(i.InviteeOccupation),

		RegisteredAt: i.RegisteredAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}

	if i.Slot.ID != 0 {
		slot := slotDaoToDomain(i.Slot)
		invitation.Slot = &slot
	}

	return invitation
}

func invitationsDaoToDomain(daoInvitations []dao.Invitation) []domain.Invitation {
	invitations := make([]domain.Invitation, len(daoInvitations))
	for i, inv := range daoInvitations {
		invitations[i] = invitationDaoToDomain(inv)
	}
	return invitations
}

// CreateBatch mints one pending invitation per token, enforcing the tier's
// per-slot quota inside the insert transaction.
func (r *InvitationRepository) CreateBatch(ctx context.Context, agentID, slotID uint, capacityType domain.CapacityType, tokens []string, limitPerSlot int) ([]domain.Invitation, error) {
	created, err := r.dao.InsertBatch(ctx, agentID, slotID, string(capacityType), tokens, limitPerSlot)
	if err != nil {
		return nil, err
	}

	return invitationsDaoToDomain(created), nil
}

func (r *InvitationRepository) CountForAgentSlot(ctx context.Context, agentID, slotID uint) (int64, error) {
	count, err := r.dao.CountForAgentSlot(ctx, agentID, slotID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountForAgentSlot -> %w", err)
	}

	return count, nil
}

func (r *InvitationRepository) GetByID(ctx context.Context, id uint) (domain.Invitation, error) {
	invitation, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, err
	}

	return invitationDaoToDomain(invitation), nil
}

func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (domain.Invitation, error) {
	invitation, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, err
	}

	return invitationDaoToDomain(invitation), nil
}

func (r *InvitationRepository) GetBySlotNRICAndStatus(ctx context.Context, slotID uint, nric string, status domain.InvitationStatus) (domain.Invitation, error) {
	invitation, err := r.dao.FindBySlotNRICAndStatus(ctx, slotID, nric, string(status))
	if err != nil {
		return domain.Invitation{}, err
	}

	return invitationDaoToDomain(invitation), nil
}

func (r *InvitationRepository) GetByAgentID(ctx context.Context, agentID uint) ([]domain.Invitation, error) {
	invitations, err := r.dao.FindByAgentID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAgentID -> %w", err)
	}

	return invitationsDaoToDomain(invitations), nil
}

func (r *InvitationRepository) GetBySlotID(ctx context.Context, slotID uint) ([]domain.Invitation, error) {
	invitations, err := r.dao.FindBySlotID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySlotID -> %w", err)
	}

	return invitationsDaoToDomain(invitations), nil
}

// Register consumes the token: captures invitee identity and moves the
// invitation to registered, exactly once.
func (r *InvitationRepository) Register(ctx context.Context, id uint, invitee domain.Invitation, now time.Time) (domain.Invitation, error) {
	registered, err := r.dao.Register(ctx, id, dao.RegistrationFields{
		Name:       invitee.InviteeName,
		NRIC:       invitee.InviteeNRIC,
		Phone:      invitee.InviteePhone,
		Email:      invitee.InviteeEmail,
		Occupation: invitee.InviteeOccupation,
	}, now)
	if err != nil {
		return domain.Invitation{}, err
	}

	return invitationDaoToDomain(registered), nil
}

func (r *InvitationRepository) MarkExpired(ctx context.Context, id uint) error {
	return r.dao.MarkExpired(ctx, id)
}

func (r *InvitationRepository) CountCompletedByAgent(ctx context.Context, agentID uint) (int64, error) {
	count, err := r.dao.CountCompletedByAgent(ctx, agentID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountCompletedByAgent -> %w", err)
	}

	return count, nil
}
