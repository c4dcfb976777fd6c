package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"go.uber.org/zap"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

const (
	pinCodeMin = 100000
	pinCodeMax = 999999

	// Insert retries after a storage-level collision with a concurrently
	// generated batch.
	pinInsertRetries = 3
)

var (
	ErrPinCodeNotFound  = repository.ErrPinCodeNotFound
	ErrPinPoolExhausted = errors.New("not enough free pin codes available for the slot")
	ErrInvalidPinCount  = errors.New("pin code count must be positive")
)

type PinCodeRepository interface {
	CreateBatch(ctx context.Context, slotID uint, codes []string) ([]domain.PinCode, error)
	GetBySlotID(ctx context.Context, slotID uint) ([]domain.PinCode, error)
	GetCodesBySlotID(ctx context.Context, slotID uint) ([]string, error)
	GetBySlotAndCode(ctx context.Context, slotID uint, code string) (domain.PinCode, error)
	DeleteUnused(ctx context.Context, slotID uint) (int64, error)
	DeleteAll(ctx context.Context, slotID uint) (int64, error)
	Inventory(ctx context.Context, slotID uint) (domain.PinInventory, error)
}

// InventoryCache is a read-through cache over a slot's PIN inventory
// summary. Generation and deletion invalidate the slot's entry. A nil cache
// is a valid no-op implementation.
type InventoryCache interface {
	GetInventory(ctx context.Context, slotID uint) (domain.PinInventory, bool)
	SetInventory(ctx context.Context, inventory domain.PinInventory)
	Invalidate(ctx context.Context, slotID uint)
}

type PinCodeService struct {
	repo     PinCodeRepository
	slotRepo SlotRepository
	cache    InventoryCache
}

// SlotRepository is the slice of the campaign repository the PIN pool and
// the gates need: slot resolution only.
type SlotRepository interface {
	GetSlotByID(ctx context.Context, id uint) (domain.Slot, error)
}

func NewPinCodeService(repo PinCodeRepository, slotRepo SlotRepository, cache InventoryCache) *PinCodeService {
	return &PinCodeService{
		repo:     repo,
		slotRepo: slotRepo,
		cache:    cache,
	}
}

// Generate draws count fresh 6-digit codes for the slot, each unique within
// the slot's existing pool and the in-flight batch, and stores them as one
// atomic batch. Codes are drawn from [100000, 999999], so a code never
// starts with a zero; that asymmetry is a property of the scheme, kept as
// is.
func (s *PinCodeService) Generate(ctx context.Context, slotID uint, count int) ([]domain.PinCode, error) {
	if count <= 0 {
		return nil, ErrInvalidPinCount
	}

	if _, err := s.slotRepo.GetSlotByID(ctx, slotID); err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}

		return nil, fmt.Errorf("s.slotRepo.GetSlotByID -> %w", err)
	}

	for attempt := 0; ; attempt++ {
		existing, err := s.repo.GetCodesBySlotID(ctx, slotID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.GetCodesBySlotID -> %w", err)
		}

		codes, err := drawCodes(count, existing)
		if err != nil {
			return nil, err
		}

		pins, err := s.repo.CreateBatch(ctx, slotID, codes)
		if err != nil {
			// A concurrent batch may have landed between our read and the
			// insert; redraw against the fresh pool.
			if errors.Is(err, repository.ErrPinCodeCollision) && attempt < pinInsertRetries {
				continue
			}

			return nil, fmt.Errorf("s.repo.CreateBatch -> %w", err)
		}

		if s.cache != nil {
			s.cache.Invalidate(ctx, slotID)
		}

		return pins, nil
	}
}

func drawCodes(count int, existing []string) ([]string, error) {
	taken := make(map[string]struct{}, len(existing)+count)
	for _, code := range existing {
		taken[code] = struct{}{}
	}

	poolSize := pinCodeMax - pinCodeMin + 1
	if len(taken)+count > poolSize {
		return nil, ErrPinPoolExhausted
	}

	codes := make([]string, 0, count)
	for len(codes) < count {
		code := strconv.Itoa(pinCodeMin + rand.Intn(poolSize))
		if _, ok := taken[code]; ok {
			continue
		}
		taken[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes, nil
}

func (s *PinCodeService) List(ctx context.Context, slotID uint) ([]domain.PinCode, error) {
	pins, err := s.repo.GetBySlotID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetBySlotID -> %w", err)
	}

	return pins, nil
}

// Inventory returns the slot's PIN pool summary, served from the cache when
// a fresh entry exists.
func (s *PinCodeService) Inventory(ctx context.Context, slotID uint) (domain.PinInventory, error) {
	if s.cache != nil {
		if inv, ok := s.cache.GetInventory(ctx, slotID); ok {
			return inv, nil
		}
	}

	inv, err := s.repo.Inventory(ctx, slotID)
	if err != nil {
		return domain.PinInventory{}, fmt.Errorf("s.repo.Inventory -> %w", err)
	}

	if s.cache != nil {
		s.cache.SetInventory(ctx, inv)
	}

	return inv, nil
}

// DeleteUnused retires every code with is_used = false. Codes linked to an
// NRIC stay regardless of whether the invitee ever completed attendance.
func (s *PinCodeService) DeleteUnused(ctx context.Context, slotID uint) (int64, error) {
	deleted, err := s.repo.DeleteUnused(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteUnused -> %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, slotID)
	}

	zap.L().Info("deleted unused pin codes",
		zap.Uint("slot_id", slotID),
		zap.Int64("deleted", deleted))

	return deleted, nil
}

func (s *PinCodeService) DeleteAll(ctx context.Context, slotID uint) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteAll -> %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, slotID)
	}

	zap.L().Info("deleted all pin codes",
		zap.Uint("slot_id", slotID),
		zap.Int64("deleted", deleted))

	return deleted, nil
}
