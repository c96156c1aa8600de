package models

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a storefront identified by its domain. Stores are created
// lazily on the first admin submission for that domain and never deleted.
type Store struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Domain    string         `gorm:"column:domain;not null;uniqueIndex:idx_stores_domain"`
	Codes     []DiscountCode `gorm:"foreignKey:StoreID"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Store) TableName() string {
	return "stores"
}
