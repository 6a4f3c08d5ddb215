package inbound

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wms.GO/core/apperr"
	inboundEntity "wms.GO/model/entity/inbound"
)

type InboundRepository struct {
	db *gorm.DB
}

func NewInboundRepository(db *gorm.DB) *InboundRepository {
	return &InboundRepository{db: db}
}

// CreateWithItems persists the inbound and its line items atomically inside tx.
func (r *InboundRepository) CreateWithItems(tx *gorm.DB, in *inboundEntity.Inbound) error {
	return tx.Create(in).Error
}

// FindByID returns a live inbound with its line items in stored order.
func (r *InboundRepository) FindByID(id uint) (*inboundEntity.Inbound, error) {
	return r.findByID(r.db, id, false)
}

// FindByIDForUpdate row-locks the inbound header inside tx before a
// status transition.
func (r *InboundRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*inboundEntity.Inbound, error) {
	return r.findByID(tx, id, true)
}

func (r *InboundRepository) findByID(db *gorm.DB, id uint, lock bool) (*inboundEntity.Inbound, error) {
	q := db
	if lock && db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var in inboundEntity.Inbound
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_id")
	}).Where("inbound_id = ? AND deleted_at IS NULL", id).First(&in).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindDataNotFound, "inbound %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// ListParams filters inbound listings.
type ListParams struct {
	WarehouseID uint
	SupplierID  uint
	ProductID   uint
	Status      inboundEntity.Status
	Page        int
	Size        int
}

// List returns live inbounds matching the filters, newest first, with items.
func (r *InboundRepository) List(params ListParams) ([]inboundEntity.Inbound, int64, error) {
	q := r.db.Model(&inboundEntity.Inbound{}).Where("inbound.deleted_at IS NULL")
	if params.WarehouseID != 0 {
		q = q.Where("inbound.warehouse_id = ?", params.WarehouseID)
	}
	if params.SupplierID != 0 {
		q = q.Where("inbound.supplier_id = ?", params.SupplierID)
	}
	if params.Status != "" {
		q = q.Where("inbound.status = ?", params.Status)
	}
	if params.ProductID != 0 {
		q = q.Joins("JOIN inbound_item ON inbound_item.inbound_id = inbound.inbound_id").
			Where("inbound_item.product_id = ?", params.ProductID).
			Distinct("inbound.*")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	size := params.Size
	if size <= 0 {
		size = 50
	}
	var out []inboundEntity.Inbound
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_id")
	}).Order("inbound.inbound_id DESC").Offset(params.Page * size).Limit(size).Find(&out).Error
	return out, total, err
}

// Save persists header mutations (status) inside tx.
func (r *InboundRepository) Save(tx *gorm.DB, in *inboundEntity.Inbound) error {
	in.ModifiedAt = time.Now()
	return tx.Omit("Items").Save(in).Error
}

// SoftDelete stamps deleted_at on the inbound; items stay attached to the
// hidden header (cascade soft delete).
func (r *InboundRepository) SoftDelete(id uint) error {
	now := time.Now()
	res := r.db.Model(&inboundEntity.Inbound{}).
		Where("inbound_id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindDataNotFound, "inbound %d not found", id)
	}
	return nil
}
