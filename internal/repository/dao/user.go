package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrAgentNotFound   = errors.New("agent not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Role string `gorm:"not null"` // "admin" or "agent"
	Name string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Agent struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`
	User   User `gorm:"foreignKey:UserID"`

	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Phone     string `gorm:"not null"`
	NRIC      string `gorm:"column:nric;not null"`
	AgentCode string `gorm:"unique;not null"`
	UnitName  string

	TierID uint `gorm:"not null"`
	Tier   Tier `gorm:"foreignKey:TierID"`

	Status string `gorm:"not null;default:active"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

// InsertAgent creates the user account and the agent profile as a unit.
func (d *UserDAO) InsertAgent(ctx context.Context, user User, agent Agent) (Agent, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, `unique constraint "uni_users_email"`) {
				return ErrUserEmailExists
			}
			return err
		}

		agent.UserID = user.ID
		if err := tx.Create(&agent).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return Agent{}, err
	}

	agent.User = user

	return agent, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAgentByUserID(ctx context.Context, userID uint) (Agent, error) {
	var agent Agent

	result := d.db.WithContext(ctx).Preload("Tier").First(&agent, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Agent{}, ErrAgentNotFound
		}

		return Agent{}, result.Error
	}

	return agent, nil
}

func (d *UserDAO) FindAgentByID(ctx context.Context, id uint) (Agent, error) {
	var agent Agent

	result := d.db.WithContext(ctx).Preload("Tier").First(&agent, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Agent{}, ErrAgentNotFound
		}

		return Agent{}, result.Error
	}

	return agent, nil
}

func (d *UserDAO) FindAllAgents(ctx context.Context) ([]Agent, error) {
	var agents []Agent

	result := d.db.WithContext(ctx).Preload("Tier").Order("id").Find(&agents)
	if result.Error != nil {
		return nil, result.Error
	}

	return agents, nil
}

func (d *UserDAO) UpdateAgent(ctx context.Context, agent Agent) (Agent, error) {
	result := d.db.WithContext(ctx).Model(&Agent{}).
		Where("id = ?", agent.ID).
		Updates(map[string]interface{}{
			"name":      agent.Name,
			"phone":     agent.Phone,
			"unit_name": agent.UnitName,
			"tier_id":   agent.TierID,
			"status":    agent.Status,
		})
	if result.Error != nil {
		return Agent{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Agent{}, ErrAgentNotFound
	}

	return d.FindAgentByID(ctx, agent.ID)
}
