package product

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"wms.GO/core/apperr"
	"wms.GO/core/cache"
	entity "wms.GO/model/entity"
)

const cacheTag = "products"

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	if err := r.db.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindDuplicateData, "product code %q already exists", p.Code)
		}
		return err
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}

// FindByID returns a live (non-deleted) product, cached for 60s. Every
// caller gets its own copy; the cached entity is never handed out, so caller
// mutations cannot leak into the cache.
func (r *ProductRepository) FindByID(id uint) (*entity.Product, error) {
	key := cache.Key("product", id)
	if v, ok := cache.GetInstance().Get(key); ok {
		p := *v.(*entity.Product)
		return &p, nil
	}
	var p entity.Product
	err := r.db.Where("product_id = ? AND deleted_at IS NULL", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindDataNotFound, "product %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	cached := p
	cache.GetInstance().Set(key, &cached, 60, []string{cacheTag})
	return &p, nil
}

// FindByIDs returns live products keyed by ID (missing IDs are absent).
func (r *ProductRepository) FindByIDs(ids []uint) (map[uint]entity.Product, error) {
	if len(ids) == 0 {
		return map[uint]entity.Product{}, nil
	}
	var rows []entity.Product
	err := r.db.Where("product_id IN ? AND deleted_at IS NULL", ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]entity.Product, len(rows))
	for _, p := range rows {
		out[p.ProductID] = p
	}
	return out, nil
}

// SearchByNameOrCode is the SQL fallback for product search (LIKE match).
func (r *ProductRepository) SearchByNameOrCode(term string, limit int) ([]entity.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	like := "%" + term + "%"
	var out []entity.Product
	err := r.db.Where("deleted_at IS NULL").
		Where("name LIKE ? OR code LIKE ?", like, like).
		Order("product_id").Limit(limit).Find(&out).Error
	return out, err
}

func (r *ProductRepository) List(page, size int) ([]entity.Product, int64, error) {
	var total int64
	q := r.db.Model(&entity.Product{}).Where("deleted_at IS NULL")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entity.Product
	err := q.Order("product_id").Offset(page * size).Limit(size).Find(&out).Error
	return out, total, err
}

func (r *ProductRepository) Update(p *entity.Product) error {
	if err := r.db.Save(p).Error; err != nil {
		return err
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}

func (r *ProductRepository) SoftDelete(id uint) error {
	now := time.Now()
	res := r.db.Model(&entity.Product{}).
		Where("product_id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindDataNotFound, "product %d not found", id)
	}
	cache.GetInstance().DeleteByTag(cacheTag)
	return nil
}
