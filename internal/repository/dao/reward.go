package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Reward rows are materialised by an external accrual process; this DAO
// only reads them.
type Reward struct {
	ID uint `gorm:"primaryKey"`

	AgentID      uint       `gorm:"index;not null"`
	Agent        Agent      `gorm:"foreignKey:AgentID"`
	AttendanceID uint       `gorm:"not null"`
	Attendance   Attendance `gorm:"foreignKey:AttendanceID"`

	Amount       float64 `gorm:"not null"`
	CapacityType string  `gorm:"not null"`
	Status       string  `gorm:"not null;default:pending"` // "pending", "confirmed" or "paid"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RewardDAO struct {
	db *gorm.DB
}

func NewRewardDAO(db *gorm.DB) *RewardDAO {
	return &RewardDAO{
		db: db,
	}
}

func (d *RewardDAO) FindByAgentID(ctx context.Context, agentID uint) ([]Reward, error) {
	var rewards []Reward

	result := d.db.WithContext(ctx).Where("agent_id = ?", agentID).Order("id DESC").Find(&rewards)
	if result.Error != nil {
		return nil, result.Error
	}

	return rewards, nil
}
