package models

import (
	"time"

	"github.com/google/uuid"
)

// CreatorCode joins one creator to one discount code, unique per pair.
type CreatorCode struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID uuid.UUID `gorm:"column:creator_id;type:uuid;not null;uniqueIndex:idx_creator_codes_pair"`
	CodeID    uuid.UUID `gorm:"column:code_id;type:uuid;not null;uniqueIndex:idx_creator_codes_pair"`
	Creator   *Creator  `gorm:"foreignKey:CreatorID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (CreatorCode) TableName() string {
	return "creator_codes"
}
