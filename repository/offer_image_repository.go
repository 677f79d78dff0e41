package repository

import (
	"context"
	"errors"

	"github.com/churnbase/churnbase/models"
	"gorm.io/gorm"
)

// OfferImageRepositoryImpl implements OfferImageRepository
type OfferImageRepositoryImpl struct {
	*BaseRepository[models.OfferImage, models.OfferImageFilter]
}

func NewOfferImageRepository(db *gorm.DB) OfferImageRepository {
	return &OfferImageRepositoryImpl{BaseRepository: NewBaseRepository[models.OfferImage, models.OfferImageFilter](db)}
}

func (r *OfferImageRepositoryImpl) applyFilter(db *gorm.DB, f models.OfferImageFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UUID != nil {
		db = db.Where("uuid = ?", *f.UUID)
	}
	if f.OfferID != nil {
		db = db.Where("offer_id = ?", *f.OfferID)
	}
	if f.UploadedByID != nil {
		db = db.Where("uploaded_by_id = ?", *f.UploadedByID)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *OfferImageRepositoryImpl) ByFilter(ctx context.Context, filter models.OfferImageFilter, orderBy string, limit, offset int) ([]*models.OfferImage, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OfferImage{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.OfferImage
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OfferImageRepositoryImpl) Count(ctx context.Context, filter models.OfferImageFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.OfferImage{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OfferImageRepositoryImpl) Exists(ctx context.Context, filter models.OfferImageFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *OfferImageRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.OfferImage, error) {
	db := r.getDB(ctx)
	var row models.OfferImage
	if err := db.Where("uuid = ?", uuidStr).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *OfferImageRepositoryImpl) ListByOffer(ctx context.Context, offerID uint) ([]*models.OfferImage, error) {
	return r.ByFilter(ctx, models.OfferImageFilter{OfferID: &offerID}, "created_at DESC", 0, 0)
}
