package outbound

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wms.GO/core/apperr"
	outboundEntity "wms.GO/model/entity/outbound"
)

type OutboundRepository struct {
	db *gorm.DB
}

func NewOutboundRepository(db *gorm.DB) *OutboundRepository {
	return &OutboundRepository{db: db}
}

// CreateWithItems persists the outbound and its line items atomically inside
// tx, then derives the unique order number from the assigned identity key.
// The header is staged with a NULL order number so overlapping creates never
// meet on the unique index while the number is still unassigned.
func (r *OutboundRepository) CreateWithItems(tx *gorm.DB, o *outboundEntity.Outbound) error {
	if err := tx.Omit("OrderNumber").Create(o).Error; err != nil {
		return err
	}
	o.OrderNumber = fmt.Sprintf("OB-%s-%06d", time.Now().Format("20060102"), o.OutboundID)
	if err := tx.Model(o).Update("order_number", o.OrderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindDuplicateData, "order number %q already exists", o.OrderNumber)
		}
		return err
	}
	return nil
}

// FindByID returns a live outbound with its line items in stored order.
func (r *OutboundRepository) FindByID(id uint) (*outboundEntity.Outbound, error) {
	return r.findByID(r.db, id, false)
}

// FindByIDForUpdate row-locks the outbound header inside tx before a
// status transition.
func (r *OutboundRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*outboundEntity.Outbound, error) {
	return r.findByID(tx, id, true)
}

func (r *OutboundRepository) findByID(db *gorm.DB, id uint, lock bool) (*outboundEntity.Outbound, error) {
	q := db
	if lock && db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var o outboundEntity.Outbound
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_id")
	}).Where("outbound_id = ? AND deleted_at IS NULL", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindDataNotFound, "outbound %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListParams filters outbound listings.
type ListParams struct {
	WarehouseID uint
	Status      outboundEntity.Status
	Page        int
	Size        int
}

// List returns live outbounds matching the filters, newest first, with items.
func (r *OutboundRepository) List(params ListParams) ([]outboundEntity.Outbound, int64, error) {
	q := r.db.Model(&outboundEntity.Outbound{}).Where("deleted_at IS NULL")
	if params.WarehouseID != 0 {
		q = q.Where("warehouse_id = ?", params.WarehouseID)
	}
	if params.Status != "" {
		q = q.Where("status = ?", params.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	size := params.Size
	if size <= 0 {
		size = 50
	}
	var out []outboundEntity.Outbound
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_id")
	}).Order("outbound_id DESC").Offset(params.Page * size).Limit(size).Find(&out).Error
	return out, total, err
}

// Save persists header mutations (status, shipped date) inside tx.
func (r *OutboundRepository) Save(tx *gorm.DB, o *outboundEntity.Outbound) error {
	o.ModifiedAt = time.Now()
	return tx.Omit("Items").Save(o).Error
}
