package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound          = errors.New("campaign not found")
	ErrSlotNotFound              = errors.New("slot not found")
	ErrTierNotFound              = errors.New("tier not found")
	ErrInvalidCampaignTransition = errors.New("invalid campaign status transition")
	ErrTierInUse                 = errors.New("tier is assigned to agents")
)

type Campaign struct {
	ID uint `gorm:"primaryKey"`

	Name           string    `gorm:"not null"`
	Venue          string    `gorm:"not null"`
	StartDate      time.Time `gorm:"not null"`
	EndDate        time.Time `gorm:"not null"`
	InvitationType string    `gorm:"not null"` // "business_opportunity" or "job_opportunity"
	Status         string    `gorm:"not null;default:draft"`

	Slots []Slot `gorm:"foreignKey:CampaignID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Slot struct {
	ID         uint     `gorm:"primaryKey"`
	CampaignID uint     `gorm:"index;not null"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	DayOfWeek             int    `gorm:"not null"`
	StartTime             string `gorm:"not null"` // HH:MM:SS
	EndTime               string `gorm:"not null"`
	CheckinWindowMinutes  int    `gorm:"not null;default:30"`
	CheckoutWindowMinutes int    `gorm:"not null;default:30"`
	IsActive              bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Tier struct {
	ID uint `gorm:"primaryKey"`

	Name                   string  `gorm:"not null"`
	RoleType               string  `gorm:"not null"` // "agent" or "business_partner"
	RewardAmount           float64 `gorm:"not null"`
	InvitationLimitPerSlot int     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CampaignDAO struct {
	db *gorm.DB
}

func NewCampaignDAO(db *gorm.DB) *CampaignDAO {
	return &CampaignDAO{
		db: db,
	}
}

func (d *CampaignDAO) Insert(ctx context.Context, campaign Campaign) (Campaign, error) {
	result := d.db.WithContext(ctx).Create(&campaign)
	if result.Error != nil {
		return Campaign{}, result.Error
	}

	return campaign, nil
}

func (d *CampaignDAO) FindByID(ctx context.Context, id uint) (Campaign, error) {
	var campaign Campaign

	result := d.db.WithContext(ctx).Preload("Slots").First(&campaign, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Campaign{}, ErrCampaignNotFound
		}

		return Campaign{}, result.Error
	}

	return campaign, nil
}

func (d *CampaignDAO) FindAll(ctx context.Context) ([]Campaign, error) {
	var campaigns []Campaign

	result := d.db.WithContext(ctx).Preload("Slots").Order("id").Find(&campaigns)
	if result.Error != nil {
		return nil, result.Error
	}

	return campaigns, nil
}

func (d *CampaignDAO) Update(ctx context.Context, campaign Campaign) (Campaign, error) {
	result := d.db.WithContext(ctx).Model(&Campaign{}).
		Where("id = ?", campaign.ID).
		Updates(map[string]interface{}{
			"name":            campaign.Name,
			"venue":           campaign.Venue,
			"start_date":      campaign.StartDate,
			"end_date":        campaign.EndDate,
			"invitation_type": campaign.InvitationType,
		})
	if result.Error != nil {
		return Campaign{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Campaign{}, ErrCampaignNotFound
	}

	return d.FindByID(ctx, campaign.ID)
}

// UpdateStatus moves a campaign from one status to another. The expected
// current status is part of the WHERE clause so concurrent transitions
// cannot both win.
func (d *CampaignDAO) UpdateStatus(ctx context.Context, id uint, from, to string) error {
	result := d.db.WithContext(ctx).Model(&Campaign{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := d.db.WithContext(ctx).Model(&Campaign{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrCampaignNotFound
		}
		return ErrInvalidCampaignTransition
	}

	return nil
}

func (d *CampaignDAO) InsertSlot(ctx context.Context, slot Slot) (Slot, error) {
	result := d.db.WithContext(ctx).Create(&slot)
	if result.Error != nil {
		return Slot{}, result.Error
	}

	return slot, nil
}

func (d *CampaignDAO) FindSlotByID(ctx context.Context, id uint) (Slot, error) {
	var slot Slot

	result := d.db.WithContext(ctx).Preload("Campaign").First(&slot, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Slot{}, ErrSlotNotFound
		}

		return Slot{}, result.Error
	}

	return slot, nil
}

func (d *CampaignDAO) FindSlotsByCampaignID(ctx context.Context, campaignID uint) ([]Slot, error) {
	var slots []Slot

	result := d.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Order("day_of_week, start_time").Find(&slots)
	if result.Error != nil {
		return nil, result.Error
	}

	return slots, nil
}

func (d *CampaignDAO) UpdateSlot(ctx context.Context, slot Slot) (Slot, error) {
	result := d.db.WithContext(ctx).Model(&Slot{}).
		Where("id = ?", slot.ID).
		Updates(map[string]interface{}{
			"day_of_week":             slot.DayOfWeek,
			"start_time":              slot.StartTime,
			"end_time":                slot.EndTime,
			"checkin_window_minutes":  slot.CheckinWindowMinutes,
			"checkout_window_minutes": slot.CheckoutWindowMinutes,
			"is_active":               slot.IsActive,
		})
	if result.Error != nil {
		return Slot{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Slot{}, ErrSlotNotFound
	}

	return d.FindSlotByID(ctx, slot.ID)
}

func (d *CampaignDAO) InsertTier(ctx context.Context, tier Tier) (Tier, error) {
	result := d.db.WithContext(ctx).Create(&tier)
	if result.Error != nil {
		return Tier{}, result.Error
	}

	return tier, nil
}

func (d *CampaignDAO) FindTierByID(ctx context.Context, id uint) (Tier, error) {
	var tier Tier

	result := d.db.WithContext(ctx).First(&tier, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Tier{}, ErrTierNotFound
		}

		return Tier{}, result.Error
	}

	return tier, nil
}

func (d *CampaignDAO) FindAllTiers(ctx context.Context) ([]Tier, error) {
	var tiers []Tier

	result := d.db.WithContext(ctx).Order("id").Find(&tiers)
	if result.Error != nil {
		return nil, result.Error
	}

	return tiers, nil
}

func (d *CampaignDAO) UpdateTier(ctx context.Context, tier Tier) (Tier, error) {
	result := d.db.WithContext(ctx).Model(&Tier{}).
		Where("id = ?", tier.ID).
		Updates(map[string]interface{}{
			"name":                      tier.Name,
			"role_type":                 tier.RoleType,
			"reward_amount":             tier.RewardAmount,
			"invitation_limit_per_slot": tier.InvitationLimitPerSlot,
		})
	if result.Error != nil {
		return Tier{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Tier{}, ErrTierNotFound
	}

	return d.FindTierByID(ctx, tier.ID)
}

func (d *CampaignDAO) DeleteTier(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assigned int64
		if err := tx.Model(&Agent{}).Where("tier_id = ?", id).Count(&assigned).Error; err != nil {
			return err
		}
		if assigned > 0 {
			return ErrTierInUse
		}

		result := tx.Delete(&Tier{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTierNotFound
		}

		return nil
	})
}

// SlotReportRow aggregates one slot's invitation and attendance numbers for
// the campaign report.
type SlotReportRow struct {
	SlotID         uint  `json:"slot_id"`
	Registered     int64 `json:"registered"`
	Attended       int64 `json:"attended"`
	Completed      int64 `json:"completed"`
	FullAttendance int64 `json:"full_attendance"`
	PinsTotal      int64 `json:"pins_total"`
	PinsUsed       int64 `json:"pins_used"`
}

func (d *CampaignDAO) SlotReport(ctx context.Context, slotID uint) (SlotReportRow, error) {
	row := SlotReportRow{SlotID: slotID}

	counts := []struct {
		status string
		dest   *int64
	}{
		{"registered", &row.Registered},
		{"attended", &row.Attended},
		{"completed", &row.Completed},
	}
	for _, c := range counts {
		err := d.db.WithContext(ctx).Model(&Invitation{}).
			Where("slot_id = ? AND status = ?", slotID, c.status).
			Count(c.dest).Error
		if err != nil {
			return SlotReportRow{}, err
		}
	}

	err := d.db.WithContext(ctx).Model(&Attendance{}).
		Joins("JOIN invitations ON invitations.id = attendance.invitation_id").
		Where("invitations.slot_id = ? AND attendance.is_full_attendance = true", slotID).
		Count(&row.FullAttendance).Error
	if err != nil {
		return SlotReportRow{}, err
	}

	if err = d.db.WithContext(ctx).Model(&PinCode{}).Where("slot_id = ?", slotID).Count(&row.PinsTotal).Error; err != nil {
		return SlotReportRow{}, err
	}
	if err = d.db.WithContext(ctx).Model(&PinCode{}).Where("slot_id = ? AND is_used = true", slotID).Count(&row.PinsUsed).Error; err != nil {
		return SlotReportRow{}, err
	}

	return row, nil
}
