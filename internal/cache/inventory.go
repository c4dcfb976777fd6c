package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/paul-techiesapp/martin-aia/internal/domain"
)

const inventoryTTL = 5 * time.Minute

// InventoryCache keeps per-slot PIN inventory summaries in Redis. Every
// error degrades to a cache miss; the store stays the source of truth.
type InventoryCache struct {
	client *redis.Client
}

func NewInventoryCache(client *redis.Client) *InventoryCache {
	return &InventoryCache{
		client: client,
	}
}

func inventoryKey(slotID uint) string {
	return fmt.Sprintf("pin_inventory:%d", slotID)
}

func (c *InventoryCache) GetInventory(ctx context.Context, slotID uint) (domain.PinInventory, bool) {
	raw, err := c.client.Get(ctx, inventoryKey(slotID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("pin inventory cache read failed", zap.Uint("slot_id", slotID), zap.Error(err))
		}

		return domain.PinInventory{}, false
	}

	var inv domain.PinInventory
	if err := json.Unmarshal(raw, &inv); err != nil {
		zap.L().Warn("pin inventory cache entry corrupt", zap.Uint("slot_id", slotID), zap.Error(err))
		return domain.PinInventory{}, false
	}

	return inv, true
}

func (c *InventoryCache) SetInventory(ctx context.Context, inventory domain.PinInventory) {
	raw, err := json.Marshal(inventory)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, inventoryKey(inventory.SlotID), raw, inventoryTTL).Err(); err != nil {
		zap.L().Warn("pin inventory cache write failed", zap.Uint("slot_id", inventory.SlotID), zap.Error(err))
	}
}

func (c *InventoryCache) Invalidate(ctx context.Context, slotID uint) {
	if err := c.client.Del(ctx, inventoryKey(slotID)).Err(); err != nil {
		zap.L().Warn("pin inventory cache invalidate failed", zap.Uint("slot_id", slotID), zap.Error(err))
	}
}
