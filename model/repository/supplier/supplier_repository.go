package supplier

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"wms.GO/core/apperr"
	"wms.GO/core/cache"
	entity "wms.GO/model/entity"
)

const cacheTag = "suppliers"

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Create(s *entity.Supplier) error {
	if err := r.db.Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindDuplicateData, "supplier code %q already exists", s.Code)
		}
		return err
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}

// FindByID returns a live (non-deleted) supplier, cached for 60s. Callers
// get their own copy; the cached entity is never handed out.
func (r *SupplierRepository) FindByID(id uint) (*entity.Supplier, error) {
	key := cache.Key("supplier", id)
	if v, ok := cache.GetInstance().Get(key); ok {
		s := *v.(*entity.Supplier)
		return &s, nil
	}
	var s entity.Supplier
	err := r.db.Where("supplier_id = ? AND deleted_at IS NULL", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindDataNotFound, "supplier %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	cached := s
	cache.GetInstance().Set(key, &cached, 60, []string{cacheTag})
	return &s, nil
}

func (r *SupplierRepository) List(page, size int) ([]entity.Supplier, int64, error) {
	var total int64
	q := r.db.Model(&entity.Supplier{}).Where("deleted_at IS NULL")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Supplier
	err := q.Order("supplier_id").Offset(page * size).Limit(size).Find(&out).Error
	return out, total, err
}

func (r *SupplierRepository) Update(s *entity.Supplier) error {
	if err := r.db.Save(s).Error; err != nil {
		return err
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}

func (r *SupplierRepository) SoftDelete(id uint) error {
	now := time.Now()
	res := r.db.Model(&entity.Supplier{}).
		Where("supplier_id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindDataNotFound, "supplier %d not found", id)
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}
