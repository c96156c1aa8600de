package creators

import (
	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
)

// UpsertCreatorDTO holds the identity captured during the OAuth callback.
type UpsertCreatorDTO struct {
	InstagramID     string
	InstagramHandle string
	AccessToken     string
}

// ToModel prepares the GORM model from the upsert DTO.
func (u UpsertCreatorDTO) ToModel() *models.Creator {
	return &models.Creator{
		InstagramID:     u.InstagramID,
		InstagramHandle: u.InstagramHandle,
		AccessToken:     u.AccessToken,
	}
}
