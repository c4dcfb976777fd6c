package dao

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	InvitationPending    = "pending"
	InvitationRegistered = "registered"
	InvitationAttended   = "attended"
	InvitationCompleted  = "completed"
	InvitationExpired    = "expired"
)

var (
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationAlreadyUsed = errors.New("invitation token already used")
	ErrQuotaExceeded         = errors.New("invitation quota exceeded for slot")
	ErrDuplicateNRIC         = errors.New("nric already registered for another invitation")
	ErrDuplicatePhone        = errors.New("phone already registered for another invitation")
)

type Invitation struct {
	ID uint `gorm:"primaryKey"`

	AgentID uint  `gorm:"index;not null"`
	Agent   Agent `gorm:"foreignKey:AgentID"`
	SlotID  uint  `gorm:"index;not null"`
	Slot    Slot  `gorm:"foreignKey:SlotID"`

	CapacityType string `gorm:"not null"` // "agent" or "business_partner"
	UniqueToken  string `gorm:"uniqueIndex;not null"`
	Status       string `gorm:"not null;default:pending"`

	InviteeName       *string
	InviteeNRIC       *string `gorm:"column:invitee_nric"`
	InviteePhone      *string
	InviteeEmail      *string
	InviteeOccupation *string

	RegisteredAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// RegistrationFields carries the invitee identity captured at registration.
type RegistrationFields struct {
	Name       string
	NRIC       string
	Phone      string
	Email      string
	Occupation string
}

type InvitationDAO struct {
	db *gorm.DB
}

func NewInvitationDAO(db *gorm.DB) *InvitationDAO {
	return &InvitationDAO{
		db: db,
	}
}

const insertBatchRetries = 3

// InsertBatch creates one pending invitation per token. The quota check and
// the inserts run in one serializable transaction: at the default isolation
// level two overlapping batches for the same (agent, slot) would both read
// the same count and both commit, since inserts never conflict. Under
// serializable the loser aborts with a serialization failure and is retried
// against the fresh count.
func (d *InvitationDAO) InsertBatch(ctx context.Context, agentID, slotID uint, capacityType string, tokens []string, limitPerSlot int) ([]Invitation, error) {
	var invitations []Invitation

	var err error
	for attempt := 0; attempt < insertBatchRetries; attempt++ {
		err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing int64
			err := tx.Model(&Invitation{}).
				Where("agent_id = ? AND slot_id = ?", agentID, slotID).
				Count(&existing).Error
			if err != nil {
				return err
			}

			if int(existing)+len(tokens) > limitPerSlot {
				return ErrQuotaExceeded
			}

			batch := make([]Invitation, len(tokens))
			for i, token := range tokens {
				batch[i] = Invitation{
					AgentID:      agentID,
					SlotID:       slotID,
					CapacityType: capacityType,
					UniqueToken:  token,
					Status:       InvitationPending,
				}
			}
			if err := tx.Create(&batch).Error; err != nil {
				return err
			}

			invitations = batch

			return nil
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if !isSerializationFailure(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	return invitations, nil
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.SerializationFailure
}

func (d *InvitationDAO) CountForAgentSlot(ctx context.Context, agentID, slotID uint) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Invitation{}).
		Where("agent_id = ? AND slot_id = ?", agentID, slotID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (d *InvitationDAO) FindByID(ctx context.Context, id uint) (Invitation, error) {
	var invitation Invitation

	result := d.db.WithContext(ctx).Preload("Slot").Preload("Slot.Campaign").First(&invitation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *InvitationDAO) FindByToken(ctx context.Context, token string) (Invitation, error) {
	var invitation Invitation

	result := d.db.WithContext(ctx).
		Preload("Slot").Preload("Slot.Campaign").
		First(&invitation, "unique_token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

// FindBySlotNRICAndStatus resolves the invitation an NRIC registered for
// this slot, in the given status. Used by both gate protocols: check-in
// requires status registered, check-out requires status attended.
func (d *InvitationDAO) FindBySlotNRICAndStatus(ctx context.Context, slotID uint, nric, status string) (Invitation, error) {
	var invitation Invitation

	result := d.db.WithContext(ctx).
		First(&invitation, "invitee_nric = ? AND slot_id = ? AND status = ?", nric, slotID, status)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *InvitationDAO) FindByAgentID(ctx context.Context, agentID uint) ([]Invitation, error) {
	var invitations []Invitation

	result := d.db.WithContext(ctx).
		Preload("Slot").Preload("Slot.Campaign").
		Where("agent_id = ?", agentID).
		Order("id DESC").
		Find(&invitations)
	if result.Error != nil {
		return nil, result.Error
	}

	return invitations, nil
}

func (d *InvitationDAO) FindBySlotID(ctx context.Context, slotID uint) ([]Invitation, error) {
	var invitations []Invitation

	result := d.db.WithContext(ctx).
		Preload("Agent").
		Where("slot_id = ?", slotID).
		Order("id DESC").
		Find(&invitations)
	if result.Error != nil {
		return nil, result.Error
	}

	return invitations, nil
}

// Register captures the invitee identity and moves the invitation from
// pending to registered, once. The duplicate scans cover the whole
// invitations table; the partial unique indexes are the backstop for
// concurrent registrations that both pass the scan.
func (d *InvitationDAO) Register(ctx context.Context, id uint, fields RegistrationFields, now time.Time) (Invitation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Invitation{}).
			Where("invitee_nric = ? AND id <> ?", fields.NRIC, id).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateNRIC
		}

		err = tx.Model(&Invitation{}).
			Where("invitee_phone = ? AND id <> ?", fields.Phone, id).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicatePhone
		}

		result := tx.Model(&Invitation{}).
			Where("id = ? AND status = ?", id, InvitationPending).
			Updates(map[string]interface{}{
				"invitee_name":       fields.Name,
				"invitee_nric":       fields.NRIC,
				"invitee_phone":      fields.Phone,
				"invitee_email":      fields.Email,
				"invitee_occupation": fields.Occupation,
				"status":             InvitationRegistered,
				"registered_at":      now,
			})
		if result.Error != nil {
			return translateRegistrationError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInvitationAlreadyUsed
		}

		return nil
	})
	if err != nil {
		return Invitation{}, err
	}

	return d.FindByID(ctx, id)
}

func translateRegistrationError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(pgErr.Message, "uni_invitations_invitee_nric") {
			return ErrDuplicateNRIC
		}
		if strings.Contains(pgErr.Message, "uni_invitations_invitee_phone") {
			return ErrDuplicatePhone
		}
	}

	return err
}

// MarkExpired moves a pending or registered invitation to the absorbing
// expired state. Attended and completed invitations are untouchable.
func (d *InvitationDAO) MarkExpired(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Invitation{}).
		Where("id = ? AND status IN ?", id, []string{InvitationPending, InvitationRegistered}).
		Update("status", InvitationExpired)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := d.db.WithContext(ctx).Model(&Invitation{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrInvitationNotFound
		}
		return ErrInvitationAlreadyUsed
	}

	return nil
}

func (d *InvitationDAO) CountCompletedByAgent(ctx context.Context, agentID uint) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Invitation{}).
		Where("agent_id = ? AND status = ?", agentID, InvitationCompleted).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
