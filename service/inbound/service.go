package inbound

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"wms.GO/core/apperr"
	inboundEntity "wms.GO/model/entity/inbound"
	inboundRepo "wms.GO/model/repository/inbound"
	productRepo "wms.GO/model/repository/product"
	supplierRepo "wms.GO/model/repository/supplier"
	warehouseRepo "wms.GO/model/repository/warehouse"
	stockService "wms.GO/service/stock"
)

// Service drives the receiving workflow: registration, inspection state
// machine, and stock crediting on completion.
type Service struct {
	db         *gorm.DB
	inbounds   *inboundRepo.InboundRepository
	warehouses *warehouseRepo.WarehouseRepository
	suppliers  *supplierRepo.SupplierRepository
	products   *productRepo.ProductRepository
	ledger     *stockService.Service
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:         db,
		inbounds:   inboundRepo.NewInboundRepository(db),
		warehouses: warehouseRepo.NewWarehouseRepository(db),
		suppliers:  supplierRepo.NewSupplierRepository(db),
		products:   productRepo.NewProductRepository(db),
		ledger:     stockService.NewService(db),
	}
}

// ItemInput is one requested product line on registration.
type ItemInput struct {
	ProductID uint  `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// Create registers a receiving shipment with status REGISTERED.
func (s *Service) Create(warehouseID, supplierID uint, expectedDate time.Time, items []ItemInput) (*inboundEntity.Inbound, error) {
	if len(items) == 0 {
		return nil, apperr.New(apperr.KindInvalidInput, "inbound requires at least one line item")
	}
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, apperr.New(apperr.KindInvalidInput, "line item quantity must be positive, got %d for product %d", it.Quantity, it.ProductID)
		}
		ids = append(ids, it.ProductID)
	}

	if _, err := s.warehouses.FindByID(warehouseID); err != nil {
		return nil, err
	}
	if _, err := s.suppliers.FindByID(supplierID); err != nil {
		return nil, err
	}
	known, err := s.products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, apperr.New(apperr.KindDataNotFound, "product %d not found", id)
		}
	}

	in := &inboundEntity.Inbound{
		WarehouseID:  warehouseID,
		SupplierID:   supplierID,
		ExpectedDate: datatypes.Date(expectedDate),
		Status:       inboundEntity.StatusRegistered,
	}
	for _, it := range items {
		in.Items = append(in.Items, inboundEntity.Item{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.inbounds.CreateWithItems(tx, in)
	})
	if err != nil {
		return nil, err
	}
	return in, nil
}

// UpdateStatus applies one transition of the state table. Moving to
// COMPLETED credits the stock ledger for every line item in stored order,
// all inside one unit of work.
func (s *Service) UpdateStatus(id uint, target inboundEntity.Status) (*inboundEntity.Inbound, error) {
	var out *inboundEntity.Inbound
	err := s.db.Transaction(func(tx *gorm.DB) error {
		in, err := s.inbounds.FindByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if err := in.TransitionTo(target); err != nil {
			return err
		}
		if err := s.inbounds.Save(tx, in); err != nil {
			return err
		}
		if target == inboundEntity.StatusCompleted {
			for _, item := range in.Items {
				if err := s.ledger.Credit(tx, in.WarehouseID, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		out = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete soft-deletes an inbound. Completed receipts are immutable.
func (s *Service) Delete(id uint) error {
	in, err := s.inbounds.FindByID(id)
	if err != nil {
		return err
	}
	if !in.IsDeletable() {
		return apperr.New(apperr.KindInboundNotDeletable, "inbound %d is COMPLETED and cannot be deleted", id)
	}
	return s.inbounds.SoftDelete(id)
}

// Get returns one inbound with line items.
func (s *Service) Get(id uint) (*inboundEntity.Inbound, error) {
	return s.inbounds.FindByID(id)
}

// List returns filtered inbounds, newest first.
func (s *Service) List(params inboundRepo.ListParams) ([]inboundEntity.Inbound, int64, error) {
	return s.inbounds.List(params)
}
