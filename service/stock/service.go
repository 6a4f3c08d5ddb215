package stock

import (
	"gorm.io/gorm"

	"wms.GO/config"
	"wms.GO/core/apperr"
	stockEntity "wms.GO/model/entity/stock"
	productRepo "wms.GO/model/repository/product"
	stockRepo "wms.GO/model/repository/stock"
	warehouseRepo "wms.GO/model/repository/warehouse"
)

// Service owns all stock ledger mutation. Workflow services call the
// tx-scoped Credit/Reserve/Release/ConfirmShipment inside their own unit of
// work; the public methods wrap a single-operation transaction.
type Service struct {
	db         *gorm.DB
	stocks     *stockRepo.StockRepository
	products   *productRepo.ProductRepository
	warehouses *warehouseRepo.WarehouseRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:         db,
		stocks:     stockRepo.NewStockRepository(db),
		products:   productRepo.NewProductRepository(db),
		warehouses: warehouseRepo.NewWarehouseRepository(db),
	}
}

// --- tx-scoped ledger operations (shared with the workflows) ---

// Credit adds received units, creating the ledger row on the first-ever
// receipt for the pair (safety stock defaulted from config).
func (s *Service) Credit(tx *gorm.DB, warehouseID, productID uint, amount int64) error {
	if amount <= 0 {
		return apperr.New(apperr.KindInvalidInput, "stock increase amount must be positive, got %d", amount)
	}
	row, err := s.stocks.FindForUpdate(tx, warehouseID, productID)
	if apperr.IsKind(err, apperr.KindStockNotFound) {
		return s.stocks.Create(tx, &stockEntity.WarehouseStock{
			WarehouseID: warehouseID,
			ProductID:   productID,
			Quantity:    amount,
			SafetyStock: config.Get().DefaultSafetyStock,
		})
	}
	if err != nil {
		return err
	}
	if err := row.Increase(amount); err != nil {
		return err
	}
	return s.stocks.Save(tx, row)
}

// Reserve places a hold for an outbound line and returns the row as it was
// before the hold (for the creation stock summary).
func (s *Service) Reserve(tx *gorm.DB, warehouseID, productID uint, amount int64) (*stockEntity.WarehouseStock, error) {
	row, err := s.stocks.FindForUpdate(tx, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	before := *row
	if err := row.Reserve(amount); err != nil {
		return nil, err
	}
	if err := s.stocks.Save(tx, row); err != nil {
		return nil, err
	}
	return &before, nil
}

// Release undoes a hold on outbound cancellation.
func (s *Service) Release(tx *gorm.DB, warehouseID, productID uint, amount int64) error {
	row, err := s.stocks.FindForUpdate(tx, warehouseID, productID)
	if err != nil {
		return err
	}
	if err := row.ReleaseReservation(amount); err != nil {
		return err
	}
	return s.stocks.Save(tx, row)
}

// ConfirmShipment converts a hold into a physical deduction and returns the
// mutated row so the caller can evaluate the safety threshold.
func (s *Service) ConfirmShipment(tx *gorm.DB, warehouseID, productID uint, amount int64) (*stockEntity.WarehouseStock, error) {
	row, err := s.stocks.FindForUpdate(tx, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if err := row.ConfirmShipment(amount); err != nil {
		return nil, err
	}
	if err := s.stocks.Save(tx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// --- single-operation public API ---

// IncreaseStock is the manual adjustment path for receiving units outside an
// inbound (also validates the references exist).
func (s *Service) IncreaseStock(warehouseID, productID uint, amount int64) (*stockEntity.WarehouseStock, error) {
	if _, err := s.warehouses.FindByID(warehouseID); err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(productID); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.Credit(tx, warehouseID, productID, amount)
	})
	if err != nil {
		return nil, err
	}
	return s.stocks.Find(warehouseID, productID)
}

// DecreaseStock is the manual adjustment path (damage, shrinkage). It never
// touches reservations.
func (s *Service) DecreaseStock(warehouseID, productID uint, amount int64) (*stockEntity.WarehouseStock, error) {
	var out *stockEntity.WarehouseStock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row, err := s.stocks.FindForUpdate(tx, warehouseID, productID)
		if err != nil {
			return err
		}
		if err := row.Decrease(amount); err != nil {
			return err
		}
		if err := s.stocks.Save(tx, row); err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSafetyStock sets the low-stock threshold for an existing pair.
func (s *Service) UpdateSafetyStock(warehouseID, productID uint, amount int64) (*stockEntity.WarehouseStock, error) {
	var out *stockEntity.WarehouseStock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row, err := s.stocks.FindForUpdate(tx, warehouseID, productID)
		if err != nil {
			return err
		}
		if err := row.UpdateSafetyStock(amount); err != nil {
			return err
		}
		if err := s.stocks.Save(tx, row); err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the ledger row for a pair (read-through cached when Redis is
// configured).
func (s *Service) Get(warehouseID, productID uint) (*stockEntity.WarehouseStock, error) {
	return s.stocks.FindCached(warehouseID, productID)
}

// Search lists joined ledger rows with filters, sorting and paging.
func (s *Service) Search(params stockRepo.SearchParams) ([]stockRepo.View, int64, error) {
	return s.stocks.Search(params)
}

// AllBelowSafety feeds the periodic low-stock scan.
func (s *Service) AllBelowSafety() ([]stockRepo.View, error) {
	return s.stocks.AllBelowSafety()
}
