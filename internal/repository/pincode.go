package repository

import (
	"context"
	"fmt"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository/dao"
)

var (
	ErrPinCodeNotFound  = dao.ErrPinCodeNotFound
	ErrPinCodeCollision = dao.ErrPinCodeCollision
)

type PinCodeDAO interface {
	InsertBatch(ctx context.Context, slotID uint, codes []string) ([]dao.PinCode, error)
	FindBySlotID(ctx context.Context, slotID uint) ([]dao.PinCode, error)
	FindCodesBySlotID(ctx context.Context, slotID uint) ([]string, error)
	FindBySlotAndCode(ctx context.Context, slotID uint, code string) (dao.PinCode, error)
	DeleteUnused(ctx context.Context, slotID uint) (int64, error)
	DeleteAll(ctx context.Context, slotID uint) (int64, error)
	InventoryCounts(ctx context.Context, slotID uint) (total, used int64, err error)
}

type PinCodeRepository struct {
	dao PinCodeDAO
}

func NewPinCodeRepository(dao PinCodeDAO) *PinCodeRepository {
	return &PinCodeRepository{
		dao: dao,
	}
}

func pinCodeDaoToDomain(p dao.PinCode) domain.PinCode {
	return domain.PinCode{
		ID:         p.ID,
		SlotID:     p.SlotID,
		Code:       p.Code,
		LinkedNRIC: strVal(p.LinkedNRIC),
		IsUsed:     p.IsUsed,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *PinCodeRepository) CreateBatch(ctx context.Context, slotID uint, codes []string) ([]domain.PinCode, error) {
	created, err := r.dao.InsertBatch(ctx, slotID, codes)
	if err != nil {
		return nil, err
	}

	pins := make([]domain.PinCode, len(created))
	for i, p := range created {
		pins[i] = pinCodeDaoToDomain(p)
	}

	return pins, nil
}

func (r *PinCodeRepository) GetBySlotID(ctx context.Context, slotID uint) ([]domain.PinCode, error) {
	daoPins, err := r.dao.FindBySlotID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySlotID -> %w", err)
	}

	pins := make([]domain.PinCode, len(daoPins))
	for i, p := range daoPins {
		pins[i] = pinCodeDaoToDomain(p)
	}

	return pins, nil
}

func (r *PinCodeRepository) GetCodesBySlotID(ctx context.Context, slotID uint) ([]string, error) {
	codes, err := r.dao.FindCodesBySlotID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCodesBySlotID -> %w", err)
	}

	return codes, nil
}

func (r *PinCodeRepository) GetBySlotAndCode(ctx context.Context, slotID uint, code string) (domain.PinCode, error) {
	pin, err := r.dao.FindBySlotAndCode(ctx, slotID, code)
	if err != nil {
		return domain.PinCode{}, err
	}

	return pinCodeDaoToDomain(pin), nil
}

func (r *PinCodeRepository) DeleteUnused(ctx context.Context, slotID uint) (int64, error) {
	deleted, err := r.dao.DeleteUnused(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteUnused -> %w", err)
	}

	return deleted, nil
}

func (r *PinCodeRepository) DeleteAll(ctx context.Context, slotID uint) (int64, error) {
	deleted, err := r.dao.DeleteAll(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return deleted, nil
}

func (r *PinCodeRepository) Inventory(ctx context.Context, slotID uint) (domain.PinInventory, error) {
	total, used, err := r.dao.InventoryCounts(ctx, slotID)
	if err != nil {
		return domain.PinInventory{}, fmt.Errorf("r.dao.InventoryCounts -> %w", err)
	}

	return domain.PinInventory{
		SlotID: slotID,
		Total:  int(total),
		Used:   int(used),
		Unused: int(total - used),
	}, nil
}
