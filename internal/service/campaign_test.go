package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

type fakeCampaignStore struct {
	campaigns map[uint]*domain.Campaign
	slots     map[uint]*domain.Slot
	tiers     map[uint]*domain.Tier
	tierUse   map[uint]int
	reports   map[uint]domain.SlotReport
	nextID    uint
}

func newFakeCampaignStore() *fakeCampaignStore {
	return &fakeCampaignStore{
		campaigns: make(map[uint]*domain.Campaign),
		slots:     make(map[uint]*domain.Slot),
		tiers:     make(map[uint]*domain.Tier),
		tierUse:   make(map[uint]int),
		reports:   make(map[uint]domain.SlotReport),
		nextID:    1,
	}
}

func (f *fakeCampaignStore) Create(_ context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	campaign.ID = f.nextID
	f.nextID++
	f.campaigns[campaign.ID] = &campaign

	return campaign, nil
}

func (f *fakeCampaignStore) GetByID(_ context.Context, id uint) (domain.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return domain.Campaign{}, repository.ErrCampaignNotFound
	}

	return *c, nil
}

func (f *fakeCampaignStore) GetAll(_ context.Context) ([]domain.Campaign, error) {
	out := make([]domain.Campaign, 0, len(f.campaigns))
	for _, c := range f.campaigns {
		out = append(out, *c)
	}

	return out, nil
}

func (f *fakeCampaignStore) Update(_ context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	existing, ok := f.campaigns[campaign.ID]
	if !ok {
		return domain.Campaign{}, repository.ErrCampaignNotFound
	}
	campaign.Status = existing.Status
	f.campaigns[campaign.ID] = &campaign

	return campaign, nil
}

func (f *fakeCampaignStore) UpdateStatus(_ context.Context, id uint, from, to domain.CampaignStatus) error {
	c, ok := f.campaigns[id]
	if !ok {
		return repository.ErrCampaignNotFound
	}
	if c.Status != from {
		return repository.ErrInvalidCampaignTransition
	}
	c.Status = to

	return nil
}

func (f *fakeCampaignStore) CreateSlot(_ context.Context, slot domain.Slot) (domain.Slot, error) {
	slot.ID = f.nextID
	f.nextID++
	f.slots[slot.ID] = &slot

	return slot, nil
}

func (f *fakeCampaignStore) GetSlotByID(_ context.Context, id uint) (domain.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return domain.Slot{}, repository.ErrSlotNotFound
	}

	return *s, nil
}

func (f *fakeCampaignStore) GetSlotsByCampaignID(_ context.Context, campaignID uint) ([]domain.Slot, error) {
	var out []domain.Slot
	for _, s := range f.slots {
		if s.CampaignID == campaignID {
			out = append(out, *s)
		}
	}

	return out, nil
}

func (f *fakeCampaignStore) UpdateSlot(_ context.Context, slot domain.Slot) (domain.Slot, error) {
	if _, ok := f.slots[slot.ID]; !ok {
		return domain.Slot{}, repository.ErrSlotNotFound
	}
	f.slots[slot.ID] = &slot

	return slot, nil
}

func (f *fakeCampaignStore) CreateTier(_ context.Context, tier domain.Tier) (domain.Tier, error) {
	tier.ID = f.nextID
	f.nextID++
	f.tiers[tier.ID] = &tier

	return tier, nil
}

func (f *fakeCampaignStore) GetTierByID(_ context.Context, id uint) (domain.Tier, error) {
	tier, ok := f.tiers[id]
	if !ok {
		return domain.Tier{}, repository.ErrTierNotFound
	}

	return *tier, nil
}

func (f *fakeCampaignStore) GetAllTiers(_ context.Context) ([]domain.Tier, error) {
	out := make([]domain.Tier, 0, len(f.tiers))
	for _, tier := range f.tiers {
		out = append(out, *tier)
	}

	return out, nil
}

func (f *fakeCampaignStore) UpdateTier(_ context.Context, tier domain.Tier) (domain.Tier, error) {
	if _, ok := f.tiers[tier.ID]; !ok {
		return domain.Tier{}, repository.ErrTierNotFound
	}
	f.tiers[tier.ID] = &tier

	return tier, nil
}

func (f *fakeCampaignStore) DeleteTier(_ context.Context, id uint) error {
	if _, ok := f.tiers[id]; !ok {
		return repository.ErrTierNotFound
	}
	if f.tierUse[id] > 0 {
		return repository.ErrTierInUse
	}
	delete(f.tiers, id)

	return nil
}

func (f *fakeCampaignStore) SlotReport(_ context.Context, slotID uint) (domain.SlotReport, error) {
	return f.reports[slotID], nil
}

func TestCampaignService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeCampaignStore()
	svc := NewCampaignService(store)

	campaign, err := svc.CreateCampaign(ctx, domain.Campaign{
		Name:           "Career Preview",
		Venue:          "HQ Auditorium",
		InvitationType: domain.BusinessOpportunity,
		Status:         domain.CampaignActive, // caller-supplied status is ignored
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignDraft, campaign.Status)

	campaign, err = svc.TransitionCampaign(ctx, campaign.ID, domain.CampaignActive)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignActive, campaign.Status)

	campaign, err = svc.TransitionCampaign(ctx, campaign.ID, domain.CampaignPaused)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignPaused, campaign.Status)

	campaign, err = svc.TransitionCampaign(ctx, campaign.ID, domain.CampaignCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignCompleted, campaign.Status)

	_, err = svc.TransitionCampaign(ctx, campaign.ID, domain.CampaignActive)
	assert.ErrorIs(t, err, ErrInvalidCampaignTransition)
}

func TestCampaignService_Transition_Illegal(t *testing.T) {
	ctx := context.Background()
	store := newFakeCampaignStore()
	svc := NewCampaignService(store)

	campaign, err := svc.CreateCampaign(ctx, domain.Campaign{Name: "C", Venue: "V"})
	require.NoError(t, err)

	_, err = svc.TransitionCampaign(ctx, campaign.ID, domain.CampaignCompleted)
	assert.ErrorIs(t, err, ErrInvalidCampaignTransition)

	_, err = svc.TransitionCampaign(ctx, 999, domain.CampaignActive)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignService_Slots(t *testing.T) {
	ctx := context.Background()
	store := newFakeCampaignStore()
	svc := NewCampaignService(store)

	campaign, err := svc.CreateCampaign(ctx, domain.Campaign{Name: "C", Venue: "V"})
	require.NoError(t, err)

	t.Run("start must precede end", func(t *testing.T) {
		_, err := svc.CreateSlot(ctx, domain.Slot{
			CampaignID: campaign.ID,
			StartTime:  "20:00:00",
			EndTime:    "19:00:00",
		})

		assert.ErrorIs(t, err, ErrInvalidSlotWindow)
	})

	t.Run("valid slot is created", func(t *testing.T) {
		slot, err := svc.CreateSlot(ctx, domain.Slot{
			CampaignID: campaign.ID,
			DayOfWeek:  2,
			StartTime:  "19:00:00",
			EndTime:    "21:00:00",
			IsActive:   true,
		})

		require.NoError(t, err)
		assert.NotZero(t, slot.ID)

		slots, err := svc.ListSlots(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Len(t, slots, 1)
	})

	t.Run("slot on an unknown campaign", func(t *testing.T) {
		_, err := svc.CreateSlot(ctx, domain.Slot{
			CampaignID: 999,
			StartTime:  "19:00:00",
			EndTime:    "21:00:00",
		})

		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})
}

func TestCampaignService_DeleteTier(t *testing.T) {
	ctx := context.Background()
	store := newFakeCampaignStore()
	svc := NewCampaignService(store)

	tier, err := svc.CreateTier(ctx, domain.Tier{Name: "Gold", RoleType: domain.RoleTypeAgent, InvitationLimitPerSlot: 10})
	require.NoError(t, err)

	store.tierUse[tier.ID] = 2
	err = svc.DeleteTier(ctx, tier.ID)
	assert.ErrorIs(t, err, ErrTierInUse)

	store.tierUse[tier.ID] = 0
	err = svc.DeleteTier(ctx, tier.ID)
	assert.NoError(t, err)

	err = svc.DeleteTier(ctx, tier.ID)
	assert.ErrorIs(t, err, ErrTierNotFound)
}

func TestCampaignService_CampaignReport(t *testing.T) {
	ctx := context.Background()
	store := newFakeCampaignStore()
	svc := NewCampaignService(store)

	campaign, err := svc.CreateCampaign(ctx, domain.Campaign{Name: "C", Venue: "V"})
	require.NoError(t, err)
	slot, err := svc.CreateSlot(ctx, domain.Slot{
		CampaignID: campaign.ID,
		StartTime:  "19:00:00",
		EndTime:    "21:00:00",
	})
	require.NoError(t, err)

	store.reports[slot.ID] = domain.SlotReport{
		SlotID:         slot.ID,
		Registered:     10,
		Attended:       7,
		Completed:      6,
		FullAttendance: 6,
		PinsTotal:      20,
		PinsUsed:       7,
	}

	report, err := svc.CampaignReport(ctx, campaign.ID)

	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, int64(7), report[0].Attended)
	assert.Equal(t, int64(6), report[0].Completed)
}
