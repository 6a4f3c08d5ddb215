package servicetest

import (
	"testing"
	"time"

	"wms.GO/core/apperr"
	inboundEntity "wms.GO/model/entity/inbound"
	inboundService "wms.GO/service/inbound"
)

func TestInboundService_Create(t *testing.T) {
	db := testDB(t)
	w := seedWorld(t, db)
	svc := inboundService.NewService(db)

	in, err := svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now().AddDate(0, 0, 3), []inboundService.ItemInput{
		{ProductID: w.Widget.ProductID, Quantity: 10},
		{ProductID: w.Gadget.ProductID, Quantity: 5},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if in.Status != inboundEntity.StatusRegistered {
		t.Errorf("Status = %s, want REGISTERED", in.Status)
	}
	if len(in.Items) != 2 {
		t.Errorf("items = %d, want 2", len(in.Items))
	}

	// Registration must not touch the ledger.
	var count int64
	db.Table("warehouse_stock").Count(&count)
	if count != 0 {
		t.Errorf("stock rows after registration = %d, want 0", count)
	}
}

func TestInboundService_CreateValidation(t *testing.T) {
	db := testDB(t)
	w := seedWorld(t, db)
	svc := inboundService.NewService(db)

	_, err := svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now(), nil)
	if !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Errorf("empty items kind = %v, want INVALID_INPUT", apperr.KindOf(err))
	}

	_, err = svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now(), []inboundService.ItemInput{
		{ProductID: w.Widget.ProductID, Quantity: 0},
	})
	if !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Errorf("zero quantity kind = %v, want INVALID_INPUT", apperr.KindOf(err))
	}

	_, err = svc.Create(999, w.Supplier.SupplierID, time.Now(), []inboundService.ItemInput{
		{ProductID: w.Widget.ProductID, Quantity: 1},
	})
	if !apperr.IsKind(err, apperr.KindDataNotFound) {
		t.Errorf("missing warehouse kind = %v, want DATA_NOT_FOUND", apperr.KindOf(err))
	}

	_, err = svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now(), []inboundService.ItemInput{
		{ProductID: 999, Quantity: 1},
	})
	if !apperr.IsKind(err, apperr.KindDataNotFound) {
		t.Errorf("missing product kind = %v, want DATA_NOT_FOUND", apperr.KindOf(err))
	}
}

func TestInboundService_CompletionCreditsLedger(t *testing.T) {
	db := testDB(t)
	w := seedWorld(t, db)
	svc := inboundService.NewService(db)

	// Widget has an existing row; Gadget gets its first-ever receipt.
	seedStock(t, db, w.Warehouse.WarehouseID, w.Widget.ProductID, 40, 0, 10)

	in, err := svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now(), []inboundService.ItemInput{
		{ProductID: w.Widget.ProductID, Quantity: 10},
		{ProductID: w.Gadget.ProductID, Quantity: 7},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(in.InboundID, inboundEntity.StatusInspecting); err != nil {
		t.Fatalf("to INSPECTING: %v", err)
	}
	done, err := svc.UpdateStatus(in.InboundID, inboundEntity.StatusCompleted)
	if err != nil {
		t.Fatalf("to COMPLETED: %v", err)
	}
	if done.Status != inboundEntity.StatusCompleted {
		t.Errorf("Status = %s, want COMPLETED", done.Status)
	}

	widget := loadStock(t, db, w.Warehouse.WarehouseID, w.Widget.ProductID)
	if widget.Quantity != 50 {
		t.Errorf("widget quantity = %d, want 50", widget.Quantity)
	}
	gadget := loadStock(t, db, w.Warehouse.WarehouseID, w.Gadget.ProductID)
	if gadget.Quantity != 7 {
		t.Errorf("gadget quantity = %d, want 7 (row created on first receipt)", gadget.Quantity)
	}

	// COMPLETED is terminal: a retry must not credit twice.
	if _, err := svc.UpdateStatus(in.InboundID, inboundEntity.StatusCompleted); !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Errorf("re-complete kind = %v, want INVALID_STATE", apperr.KindOf(err))
	}
	widget = loadStock(t, db, w.Warehouse.WarehouseID, w.Widget.ProductID)
	if widget.Quantity != 50 {
		t.Errorf("widget quantity after retry = %d, want 50", widget.Quantity)
	}
}

func TestInboundService_RejectionLeavesLedgerUntouched(t *testing.T) {
	db := testDB(t)
	w := seedWorld(t, db)
	svc := inboundService.NewService(db)

	in, err := svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now(), []inboundService.ItemInput{
		{ProductID: w.Widget.ProductID, Quantity: 10},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.UpdateStatus(in.InboundID, inboundEntity.StatusInspecting); err != nil {
		t.Fatalf("to INSPECTING: %v", err)
	}
	if _, err := svc.UpdateStatus(in.InboundID, inboundEntity.StatusRejected); err != nil {
		t.Fatalf("to REJECTED: %v", err)
	}

	var count int64
	db.Table("warehouse_stock").Count(&count)
	if count != 0 {
		t.Errorf("stock rows after rejection = %d, want 0", count)
	}
}

func TestInboundService_InvalidTransition(t *testing.T) {
	db := testDB(t)
	w := seedWorld(t, db)
	svc := inboundService.NewService(db)

	in, err := svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now(), []inboundService.ItemInput{
		{ProductID: w.Widget.ProductID, Quantity: 10},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// REGISTERED cannot jump straight to COMPLETED.
	if _, err := svc.UpdateStatus(in.InboundID, inboundEntity.StatusCompleted); !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Errorf("skip-inspection kind = %v, want INVALID_STATE", apperr.KindOf(err))
	}
	var count int64
	db.Table("warehouse_stock").Count(&count)
	if count != 0 {
		t.Errorf("stock rows after refused transition = %d, want 0", count)
	}
}

func TestInboundService_DeleteGuard(t *testing.T) {
	db := testDB(t)
	w := seedWorld(t, db)
	svc := inboundService.NewService(db)

	in, err := svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now(), []inboundService.ItemInput{
		{ProductID: w.Widget.ProductID, Quantity: 10},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.UpdateStatus(in.InboundID, inboundEntity.StatusInspecting); err != nil {
		t.Fatalf("to INSPECTING: %v", err)
	}
	if _, err := svc.UpdateStatus(in.InboundID, inboundEntity.StatusCompleted); err != nil {
		t.Fatalf("to COMPLETED: %v", err)
	}

	if err := svc.Delete(in.InboundID); !apperr.IsKind(err, apperr.KindInboundNotDeletable) {
		t.Errorf("delete completed kind = %v, want INBOUND_NOT_DELETABLE", apperr.KindOf(err))
	}

	// A registered inbound deletes fine.
	other, err := svc.Create(w.Warehouse.WarehouseID, w.Supplier.SupplierID, time.Now(), []inboundService.ItemInput{
		{ProductID: w.Gadget.ProductID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(other.InboundID); err != nil {
		t.Fatalf("Delete registered: %v", err)
	}
	if _, err := svc.Get(other.InboundID); !apperr.IsKind(err, apperr.KindDataNotFound) {
		t.Errorf("Get after delete kind = %v, want DATA_NOT_FOUND", apperr.KindOf(err))
	}
}
