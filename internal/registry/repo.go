package registry

import (
	"context"
	"time"

	"github.com/HUNTSTAR747/referred-space-server/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles store, code, and link persistence for the registry.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to registry operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertStore creates the store for domain or touches its updated_at, and
// returns the persisted row.
func (r *Repository) UpsertStore(ctx context.Context, domain string) (*models.Store, error) {
	store := &models.Store{ID: uuid.New(), Domain: domain}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "domain"}},
			DoUpdates: clause.Assignments(map[string]any{
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(store).Error
	if err != nil {
		return nil, err
	}
	return r.FindStoreByDomain(ctx, domain)
}

// FindStoreByDomain loads a store by its unique domain.
func (r *Repository) FindStoreByDomain(ctx context.Context, domain string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("domain = ?", domain).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// UpsertCode inserts the code for the store when the (store_id, code) pair is
// new; an existing pair is left untouched so counters and verification survive
// re-submission.
func (r *Repository) UpsertCode(ctx context.Context, storeID uuid.UUID, code string) error {
	row := &models.DiscountCode{ID: uuid.New(), StoreID: storeID, Code: code}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(row).Error
}

// FindCode loads one discount code by its (store, code) identity.
func (r *Repository) FindCode(ctx context.Context, storeID uuid.UUID, code string) (*models.DiscountCode, error) {
	var row models.DiscountCode
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND code = ?", storeID, code).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertCreatorCode links a creator to a code; an existing edge is a no-op.
func (r *Repository) UpsertCreatorCode(ctx context.Context, creatorID, codeID uuid.UUID) error {
	edge := &models.CreatorCode{ID: uuid.New(), CreatorID: creatorID, CodeID: codeID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "creator_id"}, {Name: "code_id"}},
			DoNothing: true,
		}).
		Create(edge).Error
}

// ListStores returns all stores ordered by most recent activity, with their
// codes nested.
func (r *Repository) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Preload("Codes").
		Order("updated_at DESC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// ListCodes returns the store's codes with their creator edges preloaded.
func (r *Repository) ListCodes(ctx context.Context, storeID uuid.UUID) ([]models.DiscountCode, error) {
	var codes []models.DiscountCode
	if err := r.db.WithContext(ctx).
		Preload("CreatorCodes.Creator").
		Where("store_id = ?", storeID).
		Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// RecordOutcome bumps the success or fail counter for the code in a single
// statement, flipping is_verified on success. Verification is never revoked.
func (r *Repository) RecordOutcome(ctx context.Context, codeID uuid.UUID, success bool) error {
	updates := map[string]any{
		"fail_count": gorm.Expr("fail_count + 1"),
	}
	if success {
		updates = map[string]any{
			"success_count": gorm.Expr("success_count + 1"),
			"is_verified":   true,
		}
	}
	return r.db.WithContext(ctx).
		Model(&models.DiscountCode{}).
		Where("id = ?", codeID).
		Updates(updates).Error
}
