package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/utils"
	"gorm.io/gorm"
)

// OfferRepositoryImpl implements OfferRepository
type OfferRepositoryImpl struct {
	*BaseRepository[models.Offer, models.OfferFilter]
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &OfferRepositoryImpl{BaseRepository: NewBaseRepository[models.Offer, models.OfferFilter](db)}
}

func (r *OfferRepositoryImpl) applyFilter(db *gorm.DB, f models.OfferFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UUID != nil {
		db = db.Where("uuid = ?", *f.UUID)
	}
	if f.BankName != nil {
		db = db.Where("bank_name = ?", *f.BankName)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *OfferRepositoryImpl) ByFilter(ctx context.Context, filter models.OfferFilter, orderBy string, limit, offset int) ([]*models.Offer, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Offer{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Offer
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OfferRepositoryImpl) Count(ctx context.Context, filter models.OfferFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Offer{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OfferRepositoryImpl) Exists(ctx context.Context, filter models.OfferFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *OfferRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Offer, error) {
	db := r.getDB(ctx)
	var row models.Offer
	if err := db.Where("uuid = ?", uuidStr).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListByStatus returns offers filtered by status, active-only when status is nil,
// newest first
func (r *OfferRepositoryImpl) ListByStatus(ctx context.Context, status *string) ([]*models.Offer, error) {
	effective := models.OfferStatusActive
	if status != nil {
		effective = *status
	}
	return r.ByFilter(ctx, models.OfferFilter{Status: &effective}, "created_at DESC", 0, 0)
}

// ListAll returns every offer regardless of status, newest first
func (r *OfferRepositoryImpl) ListAll(ctx context.Context) ([]*models.Offer, error) {
	return r.ByFilter(ctx, models.OfferFilter{}, "created_at DESC, id DESC", 0, 0)
}

func (r *OfferRepositoryImpl) Update(ctx context.Context, offer *models.Offer) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	offer.UpdatedAt = utils.UTCNow()

	err = db.Save(offer).Error
	if err != nil {
		return err
	}

	return nil
}

func (r *OfferRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	return db.Delete(&models.Offer{}, id).Error
}

// IncrementCounters bumps click_count or application_count for the offer as a
// single server-side UPDATE. The read-modify-write stays inside Postgres, so
// concurrent interactions on the same offer serialize on the row and no
// increment is lost.
func (r *OfferRepositoryImpl) IncrementCounters(ctx context.Context, offerID uint, kind string) error {
	var column string
	switch kind {
	case models.InteractionKindView:
		column = "click_count"
	case models.InteractionKindApply:
		column = "application_count"
	default:
		return fmt.Errorf("unrecognized interaction kind %q", kind)
	}

	db := r.getDB(ctx)
	result := db.Model(&models.Offer{}).
		Where("id = ?", offerID).
		Updates(map[string]any{
			column:       gorm.Expr(column + " + 1"),
			"updated_at": utils.UTCNow(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
