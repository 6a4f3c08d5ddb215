package stock

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wms.GO/config"
	"wms.GO/core/apperr"
	stockEntity "wms.GO/model/entity/stock"
)

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// lockForUpdate adds SELECT ... FOR UPDATE on engines that support it.
// SQLite (tests) serializes writers at the database level already.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// FindForUpdate loads and row-locks the ledger row for a pair inside tx.
func (r *StockRepository) FindForUpdate(tx *gorm.DB, warehouseID, productID uint) (*stockEntity.WarehouseStock, error) {
	var s stockEntity.WarehouseStock
	err := lockForUpdate(tx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindStockNotFound, "no stock record for warehouse %d, product %d", warehouseID, productID)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Find loads the ledger row without locking (read paths).
func (r *StockRepository) Find(warehouseID, productID uint) (*stockEntity.WarehouseStock, error) {
	var s stockEntity.WarehouseStock
	err := r.db.Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindStockNotFound, "no stock record for warehouse %d, product %d", warehouseID, productID)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a fresh ledger row inside tx.
func (r *StockRepository) Create(tx *gorm.DB, s *stockEntity.WarehouseStock) error {
	if err := tx.Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindDuplicateData, "stock record for warehouse %d, product %d already exists", s.WarehouseID, s.ProductID)
		}
		return err
	}
	r.invalidate(s.WarehouseID, s.ProductID)
	return nil
}

// Save persists a mutated ledger row inside tx.
func (r *StockRepository) Save(tx *gorm.DB, s *stockEntity.WarehouseStock) error {
	s.ModifiedAt = time.Now()
	if err := tx.Save(s).Error; err != nil {
		return err
	}
	r.invalidate(s.WarehouseID, s.ProductID)
	return nil
}

// --- Redis read-through for hot availability lookups ---

func redisKey(warehouseID, productID uint) string {
	return fmt.Sprintf("wms:stock:%d:%d", warehouseID, productID)
}

// FindCached reads the ledger row through Redis when configured. Cached
// entries expire after 30s; writes invalidate eagerly.
func (r *StockRepository) FindCached(warehouseID, productID uint) (*stockEntity.WarehouseStock, error) {
	if config.RedisClient == nil {
		return r.Find(warehouseID, productID)
	}
	key := redisKey(warehouseID, productID)
	if raw, err := config.RedisClient.Get(config.RedisCtx(), key).Bytes(); err == nil {
		var s stockEntity.WarehouseStock
		if json.Unmarshal(raw, &s) == nil {
			return &s, nil
		}
	}
	s, err := r.Find(warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(s); err == nil {
		config.RedisClient.Set(config.RedisCtx(), key, raw, 30*time.Second)
	}
	return s, nil
}

func (r *StockRepository) invalidate(warehouseID, productID uint) {
	if config.RedisClient == nil {
		return
	}
	config.RedisClient.Del(config.RedisCtx(), redisKey(warehouseID, productID))
}

// --- Search ---

// View is a ledger row joined with master-data names for listings.
type View struct {
	StockID          uint   `json:"stockId"`
	WarehouseID      uint   `json:"warehouseId"`
	WarehouseName    string `json:"warehouseName"`
	ProductID        uint   `json:"productId"`
	ProductCode      string `json:"productCode"`
	ProductName      string `json:"productName"`
	Quantity         int64  `json:"quantity"`
	ReservedQuantity int64  `json:"reservedQuantity"`
	Available        int64  `json:"availableQuantity"`
	SafetyStock      int64  `json:"safetyStock"`
}

// SearchParams filters the warehouse-stock listing.
type SearchParams struct {
	WarehouseID     uint
	ProductID       uint
	ProductName     string
	ProductCode     string
	BelowSafetyOnly bool
	SortBy          string
	SortDir         string
	Page            int
	Size            int
}

var sortColumns = map[string]string{
	"quantity":    "s.quantity",
	"reserved":    "s.reserved_quantity",
	"available":   "s.quantity - s.reserved_quantity",
	"safetyStock": "s.safety_stock",
	"productName": "p.name",
	"warehouse":   "w.name",
}

// Search returns joined ledger rows matching the filters, paged.
func (r *StockRepository) Search(params SearchParams) ([]View, int64, error) {
	q := r.db.Table("warehouse_stock s").
		Joins("JOIN product p ON p.product_id = s.product_id AND p.deleted_at IS NULL").
		Joins("JOIN warehouse w ON w.warehouse_id = s.warehouse_id AND w.deleted_at IS NULL")

	if params.WarehouseID != 0 {
		q = q.Where("s.warehouse_id = ?", params.WarehouseID)
	}
	if params.ProductID != 0 {
		q = q.Where("s.product_id = ?", params.ProductID)
	}
	if params.ProductName != "" {
		q = q.Where("p.name LIKE ?", "%"+params.ProductName+"%")
	}
	if params.ProductCode != "" {
		q = q.Where("p.code LIKE ?", "%"+params.ProductCode+"%")
	}
	if params.BelowSafetyOnly {
		q = q.Where("s.quantity - s.reserved_quantity < s.safety_stock")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "s.stock_id"
	if col, ok := sortColumns[params.SortBy]; ok {
		order = col
		if params.SortDir == "desc" {
			order += " DESC"
		}
	}
	size := params.Size
	if size <= 0 {
		size = 50
	}

	var out []View
	err := q.Select(`s.stock_id, s.warehouse_id, w.name AS warehouse_name,
		s.product_id, p.code AS product_code, p.name AS product_name,
		s.quantity, s.reserved_quantity,
		s.quantity - s.reserved_quantity AS available, s.safety_stock`).
		Order(order).Offset(params.Page * size).Limit(size).
		Scan(&out).Error
	return out, total, err
}

// AllBelowSafety returns every ledger row with available < safety stock,
// joined with names. Used by the periodic low-stock scan.
func (r *StockRepository) AllBelowSafety() ([]View, error) {
	var out []View
	err := r.db.Table("warehouse_stock s").
		Joins("JOIN product p ON p.product_id = s.product_id AND p.deleted_at IS NULL").
		Joins("JOIN warehouse w ON w.warehouse_id = s.warehouse_id AND w.deleted_at IS NULL").
		Where("s.quantity - s.reserved_quantity < s.safety_stock").
		Select(`s.stock_id, s.warehouse_id, w.name AS warehouse_name,
			s.product_id, p.code AS product_code, p.name AS product_name,
			s.quantity, s.reserved_quantity,
			s.quantity - s.reserved_quantity AS available, s.safety_stock`).
		Order("s.warehouse_id, s.product_id").
		Scan(&out).Error
	return out, err
}
