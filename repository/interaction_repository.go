package repository

import (
	"context"

	"github.com/churnbase/churnbase/models"
	"gorm.io/gorm"
)

// OfferInteractionRepositoryImpl implements OfferInteractionRepository
type OfferInteractionRepositoryImpl struct {
	*BaseRepository[models.OfferInteraction, models.OfferInteractionFilter]
}

func NewOfferInteractionRepository(db *gorm.DB) OfferInteractionRepository {
	return &OfferInteractionRepositoryImpl{BaseRepository: NewBaseRepository[models.OfferInteraction, models.OfferInteractionFilter](db)}
}

func (r *OfferInteractionRepositoryImpl) applyFilter(db *gorm.DB, f models.OfferInteractionFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.OfferID != nil {
		db = db.Where("offer_id = ?", *f.OfferID)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.Kind != nil {
		db = db.Where("kind = ?", *f.Kind)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *OfferInteractionRepositoryImpl) ByFilter(ctx context.Context, filter models.OfferInteractionFilter, orderBy string, limit, offset int) ([]*models.OfferInteraction, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OfferInteraction{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.OfferInteraction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OfferInteractionRepositoryImpl) Count(ctx context.Context, filter models.OfferInteractionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OfferInteraction{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OfferInteractionRepositoryImpl) Exists(ctx context.Context, filter models.OfferInteractionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// ListByOffer returns the newest interactions for an offer, most recent first.
// limit <= 0 returns all of them.
func (r *OfferInteractionRepositoryImpl) ListByOffer(ctx context.Context, offerID uint, limit int) ([]*models.OfferInteraction, error) {
	return r.ByFilter(ctx, models.OfferInteractionFilter{OfferID: &offerID}, "created_at DESC, id DESC", limit, 0)
}

// ListByUser returns a user's interaction history joined with the offer it
// touched, most recent first.
func (r *OfferInteractionRepositoryImpl) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*UserInteractionHistory, error) {
	db := r.getDB(ctx)
	query := db.Table("offer_interactions").
		Select(`offer_interactions.id,
			offer_interactions.uuid,
			offer_interactions.offer_id,
			offer_interactions.kind,
			offer_interactions.ip_address,
			offer_interactions.user_agent,
			offer_interactions.created_at,
			offers.uuid AS offer_uuid,
			offers.title AS offer_title,
			offers.bank_name,
			offers.bonus_amount`).
		Joins("JOIN offers ON offers.id = offer_interactions.offer_id").
		Where("offer_interactions.user_id = ?", userID).
		Order("offer_interactions.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*UserInteractionHistory
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByOffer tallies an offer's views and applications in one grouped query.
// Both counts are zero when the offer has no interactions yet.
func (r *OfferInteractionRepositoryImpl) CountByOffer(ctx context.Context, offerID uint) (clicks, applications int64, err error) {
	db := r.getDB(ctx)
	var row InteractionCounts
	err = db.Table("offer_interactions").
		Select(`offer_id,
			COUNT(*) FILTER (WHERE kind = ?) AS clicks,
			COUNT(*) FILTER (WHERE kind = ?) AS applications`,
			models.InteractionKindView, models.InteractionKindApply).
		Where("offer_id = ?", offerID).
		Group("offer_id").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Clicks, row.Applications, nil
}

// CountsGroupedByOffer tallies views and applications for every offer that has
// interactions, keyed by offer ID.
func (r *OfferInteractionRepositoryImpl) CountsGroupedByOffer(ctx context.Context) (map[uint]InteractionCounts, error) {
	db := r.getDB(ctx)
	var rows []InteractionCounts
	err := db.Table("offer_interactions").
		Select(`offer_id,
			COUNT(*) FILTER (WHERE kind = ?) AS clicks,
			COUNT(*) FILTER (WHERE kind = ?) AS applications`,
			models.InteractionKindView, models.InteractionKindApply).
		Group("offer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]InteractionCounts, len(rows))
	for _, row := range rows {
		counts[row.OfferID] = row
	}
	return counts, nil
}
