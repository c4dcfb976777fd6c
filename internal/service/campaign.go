package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

var (
	ErrCampaignNotFound          = repository.ErrCampaignNotFound
	ErrSlotNotFound              = repository.ErrSlotNotFound
	ErrTierNotFound              = repository.ErrTierNotFound
	ErrInvalidCampaignTransition = repository.ErrInvalidCampaignTransition
	ErrTierInUse                 = repository.ErrTierInUse
	ErrInvalidSlotWindow         = errors.New("slot start time must be before end time")
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	GetByID(ctx context.Context, id uint) (domain.Campaign, error)
	GetAll(ctx context.Context) ([]domain.Campaign, error)
	Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.CampaignStatus) error
	CreateSlot(ctx context.Context, slot domain.Slot) (domain.Slot, error)
	GetSlotByID(ctx context.Context, id uint) (domain.Slot, error)
	GetSlotsByCampaignID(ctx context.Context, campaignID uint) ([]domain.Slot, error)
	UpdateSlot(ctx context.Context, slot domain.Slot) (domain.Slot, error)
	CreateTier(ctx context.Context, tier domain.Tier) (domain.Tier, error)
	GetTierByID(ctx context.Context, id uint) (domain.Tier, error)
	GetAllTiers(ctx context.Context) ([]domain.Tier, error)
	UpdateTier(ctx context.Context, tier domain.Tier) (domain.Tier, error)
	DeleteTier(ctx context.Context, id uint) error
	SlotReport(ctx context.Context, slotID uint) (domain.SlotReport, error)
}

type CampaignService struct {
	repo CampaignRepository
}

func NewCampaignService(repo CampaignRepository) *CampaignService {
	return &CampaignService{
		repo: repo,
	}
}

func (s *CampaignService) CreateCampaign(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	campaign.Status = domain.CampaignDraft

	created, err := s.repo.Create(ctx, campaign)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id uint) (domain.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Campaign{}, ErrCampaignNotFound
		}

		return domain.Campaign{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return campaign, nil
}

func (s *CampaignService) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return campaigns, nil
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	updated, err := s.repo.Update(ctx, campaign)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Campaign{}, ErrCampaignNotFound
		}

		return domain.Campaign{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// TransitionCampaign moves a campaign along the legal status path:
// draft -> active -> {paused <-> active} -> completed.
func (s *CampaignService) TransitionCampaign(ctx context.Context, id uint, target domain.CampaignStatus) (domain.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return domain.Campaign{}, err
	}

	if !campaign.CanTransitionTo(target) {
		return domain.Campaign{}, ErrInvalidCampaignTransition
	}

	if err = s.repo.UpdateStatus(ctx, id, campaign.Status, target); err != nil {
		if errors.Is(err, repository.ErrInvalidCampaignTransition) || errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Campaign{}, err
		}

		return domain.Campaign{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return s.GetCampaign(ctx, id)
}

func (s *CampaignService) CreateSlot(ctx context.Context, slot domain.Slot) (domain.Slot, error) {
	if _, err := s.GetCampaign(ctx, slot.CampaignID); err != nil {
		return domain.Slot{}, err
	}

	if slot.StartTime >= slot.EndTime {
		return domain.Slot{}, ErrInvalidSlotWindow
	}

	created, err := s.repo.CreateSlot(ctx, slot)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("s.repo.CreateSlot -> %w", err)
	}

	return created, nil
}

func (s *CampaignService) GetSlot(ctx context.Context, id uint) (domain.Slot, error) {
	slot, err := s.repo.GetSlotByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return domain.Slot{}, ErrSlotNotFound
		}

		return domain.Slot{}, fmt.Errorf("s.repo.GetSlotByID -> %w", err)
	}

	return slot, nil
}

func (s *CampaignService) ListSlots(ctx context.Context, campaignID uint) ([]domain.Slot, error) {
	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}

	slots, err := s.repo.GetSlotsByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetSlotsByCampaignID -> %w", err)
	}

	return slots, nil
}

func (s *CampaignService) UpdateSlot(ctx context.Context, slot domain.Slot) (domain.Slot, error) {
	if slot.StartTime >= slot.EndTime {
		return domain.Slot{}, ErrInvalidSlotWindow
	}

	updated, err := s.repo.UpdateSlot(ctx, slot)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return domain.Slot{}, ErrSlotNotFound
		}

		return domain.Slot{}, fmt.Errorf("s.repo.UpdateSlot -> %w", err)
	}

	return updated, nil
}

func (s *CampaignService) CreateTier(ctx context.Context, tier domain.Tier) (domain.Tier, error) {
	created, err := s.repo.CreateTier(ctx, tier)
	if err != nil {
		return domain.Tier{}, fmt.Errorf("s.repo.CreateTier -> %w", err)
	}

	return created, nil
}

func (s *CampaignService) GetTier(ctx context.Context, id uint) (domain.Tier, error) {
	tier, err := s.repo.GetTierByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return domain.Tier{}, ErrTierNotFound
		}

		return domain.Tier{}, fmt.Errorf("s.repo.GetTierByID -> %w", err)
	}

	return tier, nil
}

func (s *CampaignService) ListTiers(ctx context.Context) ([]domain.Tier, error) {
	tiers, err := s.repo.GetAllTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAllTiers -> %w", err)
	}

	return tiers, nil
}

func (s *CampaignService) UpdateTier(ctx context.Context, tier domain.Tier) (domain.Tier, error) {
	updated, err := s.repo.UpdateTier(ctx, tier)
	if err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return domain.Tier{}, ErrTierNotFound
		}

		return domain.Tier{}, fmt.Errorf("s.repo.UpdateTier -> %w", err)
	}

	return updated, nil
}

func (s *CampaignService) DeleteTier(ctx context.Context, id uint) error {
	err := s.repo.DeleteTier(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTierNotFound) || errors.Is(err, repository.ErrTierInUse) {
			return err
		}

		return fmt.Errorf("s.repo.DeleteTier -> %w", err)
	}

	return nil
}

// CampaignReport builds the per-slot attendance report for a campaign.
func (s *CampaignService) CampaignReport(ctx context.Context, campaignID uint) ([]domain.SlotReport, error) {
	slots, err := s.ListSlots(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	report := make([]domain.SlotReport, len(slots))
	for i, slot := range slots {
		row, err := s.repo.SlotReport(ctx, slot.ID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.SlotReport -> %w", err)
		}
		report[i] = row
	}

	return report, nil
}
