package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCode is one creator discount code belonging to a store. Codes are
// unique per (store_id, code); counters only grow and verification never
// reverts once set.
type DiscountCode struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID      uuid.UUID     `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_codes_store_code"`
	Code         string        `gorm:"column:code;not null;uniqueIndex:idx_codes_store_code"`
	IsVerified   bool          `gorm:"column:is_verified;not null;default:false"`
	SuccessCount int           `gorm:"column:success_count;not null;default:0"`
	FailCount    int           `gorm:"column:fail_count;not null;default:0"`
	CreatorCodes []CreatorCode `gorm:"foreignKey:CodeID"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}
