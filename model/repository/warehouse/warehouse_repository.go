package warehouse

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"wms.GO/core/apperr"
	"wms.GO/core/cache"
	entity "wms.GO/model/entity"
)

const cacheTag = "warehouses"

type WarehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

func (r *WarehouseRepository) Create(w *entity.Warehouse) error {
	if err := r.db.Create(w).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindDuplicateData, "warehouse code %q already exists", w.Code)
		}
		return err
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}

// FindByID returns a live (non-deleted) warehouse, cached for 60s. Callers
// get their own copy; the cached entity is never handed out.
func (r *WarehouseRepository) FindByID(id uint) (*entity.Warehouse, error) {
	key := cache.Key("warehouse", id)
	if v, ok := cache.GetInstance().Get(key); ok {
		w := *v.(*entity.Warehouse)
		return &w, nil
	}
	var w entity.Warehouse
	err := r.db.Where("warehouse_id = ? AND deleted_at IS NULL", id).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindDataNotFound, "warehouse %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	cached := w
	cache.GetInstance().Set(key, &cached, 60, []string{cacheTag})
	return &w, nil
}

func (r *WarehouseRepository) List(page, size int) ([]entity.Warehouse, int64, error) {
	var total int64
	q := r.db.Model(&entity.Warehouse{}).Where("deleted_at IS NULL")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Warehouse
	err := q.Order("warehouse_id").Offset(page * size).Limit(size).Find(&out).Error
	return out, total, err
}

func (r *WarehouseRepository) Update(w *entity.Warehouse) error {
	if err := r.db.Save(w).Error; err != nil {
		return err
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}

// SoftDelete stamps deleted_at; the row stays for audit.
func (r *WarehouseRepository) SoftDelete(id uint) error {
	now := time.Now()
	res := r.db.Model(&entity.Warehouse{}).
		Where("warehouse_id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindDataNotFound, "warehouse %d not found", id)
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}
