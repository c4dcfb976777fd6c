package repository

import (
	"context"
	"fmt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository/dao"
)

var (
	ErrCampaignNotFound          = dao.ErrCampaignNotFound
	ErrSlotNotFound              = dao.ErrSlotNotFound
	ErrTierNotFound              = dao.ErrTierNotFound
	ErrInvalidCampaignTransition = dao.ErrInvalidCampaignTransition
	ErrTierInUse                 = dao.ErrTierInUse
)

type CampaignDAO interface {
	Insert(ctx context.Context, campaign dao.Campaign) (dao.Campaign, error)
	FindByID(ctx context.Context, id uint) (dao.Campaign, error)
	FindAll(ctx context.Context) ([]dao.Campaign, error)
	Update(ctx context.Context, campaign dao.Campaign) (dao.Campaign, error)
	UpdateStatus(ctx context.Context, id uint, from, to string) error
	InsertSlot(ctx context.Context, slot dao.Slot) (dao.Slot, error)
	FindSlotByID(ctx context.Context, id uint) (dao.Slot, error)
	FindSlotsByCampaignID(ctx context.Context, campaignID uint) ([]dao.Slot, error)
	UpdateSlot(ctx context.Context, slot dao.Slot) (dao.Slot, error)
	InsertTier(ctx context.Context, tier dao.Tier) (dao.Tier, error)
	FindTierByID(ctx context.Context, id uint) (dao.Tier, error)
	FindAllTiers(ctx context.Context) ([]dao.Tier, error)
	UpdateTier(ctx context.Context, tier dao.Tier) (dao.Tier, error)
	DeleteTier(ctx context.Context, id uint) error
	SlotReport(ctx context.Context, slotID uint) (dao.SlotReportRow, error)
}

type CampaignRepository struct {
	dao CampaignDAO
}

func NewCampaignRepository(dao CampaignDAO) *CampaignRepository {
	return &CampaignRepository{
		dao: dao,
	}
}

func campaignDomainToDao(c domain.Campaign) dao.Campaign {
	return dao.Campaign{
		ID:             c.ID,
		Name:           c.Name,
		Venue:          c.Venue,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		InvitationType: string(c.InvitationType),
		Status:         string(c.Status),
	}
}

func campaignDaoToDomain(c dao.Campaign) domain.Campaign {
	campaign := domain.Campaign{
		ID:             c.ID,
		Name:           c.Name,
		Venue:          c.Venue,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		InvitationType: domain.InvitationType(c.InvitationType),
		Status:         domain.CampaignStatus(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}

	if len(c.Slots) > 0 {
		campaign.Slots = make([]domain.Slot, len(c.Slots))
		for i, s := range c.Slots {
			campaign.Slots[i] = slotDaoToDomain(s)
		}
	}

	return campaign
}

func slotDomainToDao(s domain.Slot) dao.Slot {
	return dao.Slot{
		ID:                    s.ID,
		CampaignID:            s.CampaignID,
		DayOfWeek:             s.DayOfWeek,
		StartTime:             s.StartTime,
		EndTime:               s.EndTime,
		CheckinWindowMinutes:  s.CheckinWindowMinutes,
		CheckoutWindowMinutes: s.CheckoutWindowMinutes,
		IsActive:              s.IsActive,
	}
}

func slotDaoToDomain(s dao.Slot) domain.Slot {
	slot := domain.Slot{
		ID:                    s.ID,
		CampaignID:            s.CampaignID,
		DayOfWeek:             s.DayOfWeek,
		StartTime:             s.StartTime,
		EndTime:               s.EndTime,
		CheckinWindowMinutes:  s.CheckinWindowMinutes,
		CheckoutWindowMinutes: s.CheckoutWindowMinutes,
		IsActive:              s.IsActive,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}

	if s.Campaign.ID != 0 {
		campaign := campaignDaoToDomain(s.Campaign)
		slot.Campaign = &campaign
	}

	return slot
}

func tierDomainToDao(t domain.Tier) dao.Tier {
	return dao.Tier{
		ID:                     t.ID,
		Name:                   t.Name,
		RoleType:               string(t.RoleType),
		RewardAmount:           t.RewardAmount,
		InvitationLimitPerSlot: t.InvitationLimitPerSlot,
	}
}

func tierDaoToDomain(t dao.Tier) domain.Tier {
	return domain.Tier{
		ID:                     t.ID,
		Name:                   t.Name,
		RoleType:               domain.RoleType(t.RoleType),
		RewardAmount:           t.RewardAmount,
		InvitationLimitPerSlot: t.InvitationLimitPerSlot,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	created, err := r.dao.Insert(ctx, campaignDomainToDao(campaign))
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return campaignDaoToDomain(created), nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id uint) (domain.Campaign, error) {
	campaign, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Campaign{}, err
	}

	return campaignDaoToDomain(campaign), nil
}

func (r *CampaignRepository) GetAll(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Campaign, len(campaigns))
	for i, c := range campaigns {
		result[i] = campaignDaoToDomain(c)
	}

	return result, nil
}

func (r *CampaignRepository) Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	updated, err := r.dao.Update(ctx, campaignDomainToDao(campaign))
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return campaignDaoToDomain(updated), nil
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.CampaignStatus) error {
	return r.dao.UpdateStatus(ctx, id, string(from), string(to))
}

func (r *CampaignRepository) CreateSlot(ctx context.Context, slot domain.Slot) (domain.Slot, error) {
	created, err := r.dao.InsertSlot(ctx, slotDomainToDao(slot))
	if err != nil {
		return domain.Slot{}, fmt.Errorf("r.dao.InsertSlot -> %w", err)
	}

	return slotDaoToDomain(created), nil
}

func (r *CampaignRepository) GetSlotByID(ctx context.Context, id uint) (domain.Slot, error) {
	slot, err := r.dao.FindSlotByID(ctx, id)
	if err != nil {
		return domain.Slot{}, err
	}

	return slotDaoToDomain(slot), nil
}

func (r *CampaignRepository) GetSlotsByCampaignID(ctx context.Context, campaignID uint) ([]domain.Slot, error) {
	slots, err := r.dao.FindSlotsByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSlotsByCampaignID -> %w", err)
	}

	result := make([]domain.Slot, len(slots))
	for i, s := range slots {
		result[i] = slotDaoToDomain(s)
	}

	return result, nil
}

func (r *CampaignRepository) UpdateSlot(ctx context.Context, slot domain.Slot) (domain.Slot, error) {
	updated, err := r.dao.UpdateSlot(ctx, slotDomainToDao(slot))
	if err != nil {
		return domain.Slot{}, fmt.Errorf("r.dao.UpdateSlot -> %w", err)
	}

	return slotDaoToDomain(updated), nil
}

func (r *CampaignRepository) CreateTier(ctx context.Context, tier domain.Tier) (domain.Tier, error) {
	created, err := r.dao.InsertTier(ctx, tierDomainToDao(tier))
	if err != nil {
		return domain.Tier{}, fmt.Errorf("r.dao.InsertTier -> %w", err)
	}

	return tierDaoToDomain(created), nil
}

func (r *CampaignRepository) GetTierByID(ctx context.Context, id uint) (domain.Tier, error) {
	tier, err := r.dao.FindTierByID(ctx, id)
	if err != nil {
		return domain.Tier{}, err
	}

	return tierDaoToDomain(tier), nil
}

func (r *CampaignRepository) GetAllTiers(ctx context.Context) ([]domain.Tier, error) {
	tiers, err := r.dao.FindAllTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllTiers -> %w", err)
	}

	result := make([]domain.Tier, len(tiers))
	for i, t := range tiers {
		result[i] = tierDaoToDomain(t)
	}

	return result, nil
}

func (r *CampaignRepository) UpdateTier(ctx context.Context, tier domain.Tier) (domain.Tier, error) {
	updated, err := r.dao.UpdateTier(ctx, tierDomainToDao(tier))
	if err != nil {
		return domain.Tier{}, fmt.Errorf("r.dao.UpdateTier -> %w", err)
	}

	return tierDaoToDomain(updated), nil
}

func (r *CampaignRepository) DeleteTier(ctx context.Context, id uint) error {
	return r.dao.DeleteTier(ctx, id)
}

func (r *CampaignRepository) SlotReport(ctx context.Context, slotID uint) (domain.SlotReport, error) {
	row, err := r.dao.SlotReport(ctx, slotID)
	if err != nil {
		return domain.SlotReport{}, fmt.Errorf("r.dao.SlotReport -> %w", err)
	}

	return domain.SlotReport{
		SlotID:         row.SlotID,
		Registered:     row.Registered,
		Attended:       row.Attended,
		Completed:      row.Completed,
		FullAttendance: row.FullAttendance,
		PinsTotal:      row.PinsTotal,
		PinsUsed:       row.PinsUsed,
	}, nil
}
