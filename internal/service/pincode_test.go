package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
)

type fakePinStore struct {
	pins           map[uint][]*domain.PinCode // keyed by slot ID
	nextID         uint
	failInsertOnce bool
}

func newFakePinStore() *fakePinStore {
	return &fakePinStore{
		pins:   make(map[uint][]*domain.PinCode),
		nextID: 1,
	}
}

func (f *fakePinStore) CreateBatch(_ context.Context, slotID uint, codes []string) ([]domain.PinCode, error) {
	if f.failInsertOnce {
		f.failInsertOnce = false
		return nil, repository.ErrPinCodeCollision
	}

	existing := make(map[string]struct{})
	for _, pin := range f.pins[slotID] {
		existing[pin.Code] = struct{}{}
	}

	created := make([]domain.PinCode, 0, len(codes))
	for _, code := range codes {
		if _, ok := existing[code]; ok {
			return nil, repository.ErrPinCodeCollision
		}
		pin := &domain.PinCode{ID: f.nextID, SlotID: slotID, Code: code}
		f.nextID++
		f.pins[slotID] = append(f.pins[slotID], pin)
		created = append(created, *pin)
	}

	return created, nil
}

func (f *fakePinStore) GetBySlotID(_ context.Context, slotID uint) ([]domain.PinCode, error) {
	pins := make([]domain.PinCode, 0, len(f.pins[slotID]))
	for _, pin := range f.pins[slotID] {
		pins = append(pins, *pin)
	}

	return pins, nil
}

func (f *fakePinStore) GetCodesBySlotID(_ context.Context, slotID uint) ([]string, error) {
	codes := make([]string, 0, len(f.pins[slotID]))
	for _, pin := range f.pins[slotID] {
		codes = append(codes, pin.Code)
	}

	return codes, nil
}

func (f *fakePinStore) GetBySlotAndCode(_ context.Context, slotID uint, code string) (domain.PinCode, error) {
	for _, pin := range f.pins[slotID] {
		if pin.Code == code {
			return *pin, nil
		}
	}

	return domain.PinCode{}, repository.ErrPinCodeNotFound
}

func (f *fakePinStore) DeleteUnused(_ context.Context, slotID uint) (int64, error) {
	var kept []*domain.PinCode
	var deleted int64
	for _, pin := range f.pins[slotID] {
		if pin.IsUsed {
			kept = append(kept, pin)
		} else {
			deleted++
		}
	}
	f.pins[slotID] = kept

	return deleted, nil
}

func (f *fakePinStore) DeleteAll(_ context.Context, slotID uint) (int64, error) {
	deleted := int64(len(f.pins[slotID]))
	delete(f.pins, slotID)

	return deleted, nil
}

func (f *fakePinStore) Inventory(_ context.Context, slotID uint) (domain.PinInventory, error) {
	inv := domain.PinInventory{SlotID: slotID}
	for _, pin := range f.pins[slotID] {
		inv.Total++
		if pin.IsUsed {
			inv.Used++
		} else {
			inv.Unused++
		}
	}

	return inv, nil
}

type fakeSlotStore struct {
	slots map[uint]domain.Slot
}

func (f *fakeSlotStore) GetSlotByID(_ context.Context, id uint) (domain.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return domain.Slot{}, repository.ErrSlotNotFound
	}

	return slot, nil
}

type countingCache struct {
	entries     map[uint]domain.PinInventory
	invalidated int
	hits        int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[uint]domain.PinInventory)}
}

func (c *countingCache) GetInventory(_ context.Context, slotID uint) (domain.PinInventory, bool) {
	inv, ok := c.entries[slotID]
	if ok {
		c.hits++
	}

	return inv, ok
}

func (c *countingCache) SetInventory(_ context.Context, inventory domain.PinInventory) {
	c.entries[inventory.SlotID] = inventory
}

func (c *countingCache) Invalidate(_ context.Context, slotID uint) {
	delete(c.entries, slotID)
	c.invalidated++
}

func activeSlots() *fakeSlotStore {
	return &fakeSlotStore{slots: map[uint]domain.Slot{
		1: {ID: 1, CampaignID: 1, IsActive: true},
	}}
}

func TestPinCodeService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("codes are unique six digit numbers without a leading zero", func(t *testing.T) {
		store := newFakePinStore()
		svc := NewPinCodeService(store, activeSlots(), nil)

		pins, err := svc.Generate(ctx, 1, 50)

		require.NoError(t, err)
		require.Len(t, pins, 50)

		seen := make(map[string]struct{})
		for _, pin := range pins {
			assert.Len(t, pin.Code, 6)
			n, convErr := strconv.Atoi(pin.Code)
			require.NoError(t, convErr)
			assert.GreaterOrEqual(t, n, 100000)
			assert.LessOrEqual(t, n, 999999)
			_, dup := seen[pin.Code]
			assert.False(t, dup, "duplicate code %v", pin.Code)
			seen[pin.Code] = struct{}{}
		}
	})

	t.Run("new batch avoids existing codes", func(t *testing.T) {
		store := newFakePinStore()
		svc := NewPinCodeService(store, activeSlots(), nil)

		first, err := svc.Generate(ctx, 1, 100)
		require.NoError(t, err)
		second, err := svc.Generate(ctx, 1, 100)
		require.NoError(t, err)

		existing := make(map[string]struct{})
		for _, pin := range first {
			existing[pin.Code] = struct{}{}
		}
		for _, pin := range second {
			_, dup := existing[pin.Code]
			assert.False(t, dup, "code %v reissued", pin.Code)
		}
	})

	t.Run("insert collision triggers a redraw", func(t *testing.T) {
		store := newFakePinStore()
		store.failInsertOnce = true
		svc := NewPinCodeService(store, activeSlots(), nil)

		pins, err := svc.Generate(ctx, 1, 10)

		require.NoError(t, err)
		assert.Len(t, pins, 10)
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc := NewPinCodeService(newFakePinStore(), activeSlots(), nil)

		_, err := svc.Generate(ctx, 99, 10)

		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("non-positive count", func(t *testing.T) {
		svc := NewPinCodeService(newFakePinStore(), activeSlots(), nil)

		_, err := svc.Generate(ctx, 1, 0)

		assert.ErrorIs(t, err, ErrInvalidPinCount)
	})

	t.Run("generation invalidates the inventory cache", func(t *testing.T) {
		store := newFakePinStore()
		c := newCountingCache()
		c.entries[1] = domain.PinInventory{SlotID: 1, Total: 5}
		svc := NewPinCodeService(store, activeSlots(), c)

		_, err := svc.Generate(ctx, 1, 5)

		require.NoError(t, err)
		assert.Equal(t, 1, c.invalidated)
	})
}

func TestDrawCodes_PoolExhausted(t *testing.T) {
	existing := make([]string, 0, 900000)
	for n := 100000; n <= 999999; n++ {
		existing = append(existing, strconv.Itoa(n))
	}

	_, err := drawCodes(1, existing)

	assert.ErrorIs(t, err, ErrPinPoolExhausted)
}

func TestPinCodeService_Inventory(t *testing.T) {
	ctx := context.Background()

	t.Run("served from cache on a hit", func(t *testing.T) {
		store := newFakePinStore()
		c := newCountingCache()
		c.entries[1] = domain.PinInventory{SlotID: 1, Total: 7, Used: 2, Unused: 5}
		svc := NewPinCodeService(store, activeSlots(), c)

		inv, err := svc.Inventory(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, 7, inv.Total)
		assert.Equal(t, 1, c.hits)
	})

	t.Run("miss falls through to the store and fills the cache", func(t *testing.T) {
		store := newFakePinStore()
		c := newCountingCache()
		svc := NewPinCodeService(store, activeSlots(), c)

		_, err := svc.Generate(ctx, 1, 3)
		require.NoError(t, err)

		inv, err := svc.Inventory(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, inv.Total)
		assert.Equal(t, inv, c.entries[1])
	})
}

func TestPinCodeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete unused keeps claimed codes", func(t *testing.T) {
		store := newFakePinStore()
		svc := NewPinCodeService(store, activeSlots(), nil)

		_, err := svc.Generate(ctx, 1, 5)
		require.NoError(t, err)
		store.pins[1][0].IsUsed = true
		store.pins[1][0].LinkedNRIC = "S1234567A"

		deleted, err := svc.DeleteUnused(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(4), deleted)
		require.Len(t, store.pins[1], 1)
		assert.True(t, store.pins[1][0].IsUsed)
	})

	t.Run("delete all clears the slot pool", func(t *testing.T) {
		store := newFakePinStore()
		c := newCountingCache()
		svc := NewPinCodeService(store, activeSlots(), c)

		_, err := svc.Generate(ctx, 1, 5)
		require.NoError(t, err)

		deleted, err := svc.DeleteAll(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(5), deleted)
		assert.Empty(t, store.pins[1])
		assert.Equal(t, 2, c.invalidated) // generate + delete
	})
}
