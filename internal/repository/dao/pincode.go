package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPinCodeNotFound  = errors.New("pin code not found")
	ErrPinCodeCollision = errors.New("pin code collides with an existing code for the slot")
)

type PinCode struct {
	ID uint `gorm:"primaryKey"`

	SlotID uint `gorm:"index;not null"`
	Slot   Slot `gorm:"foreignKey:SlotID"`

	Code       string  `gorm:"not null"` // 6 digits, unique within the slot
	LinkedNRIC *string `gorm:"column:linked_nric"`
	IsUsed     bool    `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PinCodeDAO struct {
	db *gorm.DB
}

func NewPinCodeDAO(db *gorm.DB) *PinCodeDAO {
	return &PinCodeDAO{
		db: db,
	}
}

// InsertBatch stores a freshly drawn batch of codes for the slot. The whole
// batch succeeds or fails as a unit. A collision with a code inserted after
// the caller drew its batch surfaces as ErrPinCodeCollision so the caller
// can redraw.
func (d *PinCodeDAO) InsertBatch(ctx context.Context, slotID uint, codes []string) ([]PinCode, error) {
	pins := make([]PinCode, len(codes))
	for i, code := range codes {
		pins[i] = PinCode{
			SlotID: slotID,
			Code:   code,
		}
	}

	err := d.db.WithContext(ctx).Create(&pins).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrPinCodeCollision
		}

		return nil, err
	}

	return pins, nil
}

func (d *PinCodeDAO) FindBySlotID(ctx context.Context, slotID uint) ([]PinCode, error) {
	var pins []PinCode

	result := d.db.WithContext(ctx).Where("slot_id = ?", slotID).Order("id").Find(&pins)
	if result.Error != nil {
		return nil, result.Error
	}

	return pins, nil
}

func (d *PinCodeDAO) FindCodesBySlotID(ctx context.Context, slotID uint) ([]string, error) {
	var codes []string

	err := d.db.WithContext(ctx).Model(&PinCode{}).
		Where("slot_id = ?", slotID).
		Pluck("code", &codes).Error
	if err != nil {
		return nil, err
	}

	return codes, nil
}

// FindBySlotAndCode resolves a presented code. Codes are slot-scoped: the
// same digit string on another slot is a different PIN entirely.
func (d *PinCodeDAO) FindBySlotAndCode(ctx context.Context, slotID uint, code string) (PinCode, error) {
	var pin PinCode

	result := d.db.WithContext(ctx).First(&pin, "slot_id = ? AND code = ?", slotID, code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PinCode{}, ErrPinCodeNotFound
		}

		return PinCode{}, result.Error
	}

	return pin, nil
}

// DeleteUnused removes codes with is_used = false. A code linked to an NRIC
// has is_used = true and is preserved regardless of attendance outcome.
func (d *PinCodeDAO) DeleteUnused(ctx context.Context, slotID uint) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("slot_id = ? AND is_used = false", slotID).
		Delete(&PinCode{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *PinCodeDAO) DeleteAll(ctx context.Context, slotID uint) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Delete(&PinCode{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// InventoryCounts returns total and used code counts for the slot.
func (d *PinCodeDAO) InventoryCounts(ctx context.Context, slotID uint) (total, used int64, err error) {
	err = d.db.WithContext(ctx).Model(&PinCode{}).
		Where("slot_id = ?", slotID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	err = d.db.WithContext(ctx).Model(&PinCode{}).
		Where("slot_id = ? AND is_used = true", slotID).
		Count(&used).Error
	if err != nil {
		return 0, 0, err
	}

	return total, used, nil
}
