package models

import (
	"time"

	"github.com/google/uuid"
)

// Creator is an Instagram identity linked through the OAuth flow. Keyed on
// the Instagram user id; handle and token refresh on every re-link.
type Creator struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	InstagramID     string    `gorm:"column:instagram_id;not null;uniqueIndex:idx_creators_instagram_id"`
	InstagramHandle string    `gorm:"column:instagram_handle;not null"`
	AccessToken     string    `gorm:"column:access_token"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Creator) TableName() string {
	return "creators"
}
