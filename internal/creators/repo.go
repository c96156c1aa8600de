package creators

import (
	"context"
	"time"

	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles creator persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to creator operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes the creator keyed on instagram_id, refreshing the handle and
// access token on conflict, and returns the persisted row.
func (r *Repository) Upsert(ctx context.Context, dto UpsertCreatorDTO) (*models.Creator, error) {
	creator := dto.ToModel()
	creator.ID = uuid.New()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "instagram_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"instagram_handle": dto.InstagramHandle,
				"access_token":     dto.AccessToken,
				"updated_at":       time.Now().UTC(),
			}),
		}).
		Create(creator).Error
	if err != nil {
		return nil, err
	}
	return r.FindByInstagramID(ctx, dto.InstagramID)
}

// FindByInstagramID loads a creator by the third-party identifier.
func (r *Repository) FindByInstagramID(ctx context.Context, instagramID string) (*models.Creator, error) {
	var creator models.Creator
	if err := r.db.WithContext(ctx).Where("instagram_id = ?", instagramID).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

// FindByHandle loads a creator by their Instagram handle.
func (r *Repository) FindByHandle(ctx context.Context, handle string) (*models.Creator, error) {
	var creator models.Creator
	if err := r.db.WithContext(ctx).Where("instagram_handle = ?", handle).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}
