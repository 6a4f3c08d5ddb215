package servicetest

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"wms.GO/core/cache"
	entity "wms.GO/model/entity"
	inboundEntity "wms.GO/model/entity/inbound"
	outboundEntity "wms.GO/model/entity/outbound"
	stockEntity "wms.GO/model/entity/stock"
	"wms.GO/service/notify"
)

var testDBSeq atomic.Uint64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	cache.GetInstance().Flush()
	// A plain ":memory:" DSN gives every pool connection its own empty
	// database; use a named shared in-memory database so queries issued on
	// the base *gorm.DB while a transaction pins a connection still see the
	// migrated schema.
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&entity.Warehouse{}, &entity.Supplier{}, &entity.Product{},
		&stockEntity.WarehouseStock{},
		&inboundEntity.Inbound{}, &inboundEntity.Item{},
		&outboundEntity.Outbound{}, &outboundEntity.Item{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type world struct {
	Warehouse entity.Warehouse
	Supplier  entity.Supplier
	Widget    entity.Product
	Gadget    entity.Product
}

func seedWorld(t *testing.T, db *gorm.DB) world {
	t.Helper()
	w := world{
		Warehouse: entity.Warehouse{Code: "WH-01", Name: "Seoul Central"},
		Supplier: entity.Supplier{
			Code: "SUP-01", Name: "Acme",
			ManagerName: "Lee", ManagerEmail: "lee@acme.example", ManagerPhone: "010-1111-2222",
		},
	}
	if err := db.Create(&w.Warehouse).Error; err != nil {
		t.Fatalf("seed warehouse: %v", err)
	}
	if err := db.Create(&w.Supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	w.Widget = entity.Product{Code: "P-001", Name: "Widget", SupplierID: w.Supplier.SupplierID}
	w.Gadget = entity.Product{Code: "P-002", Name: "Gadget", SupplierID: w.Supplier.SupplierID}
	for _, p := range []*entity.Product{&w.Widget, &w.Gadget} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	return w
}

func seedStock(t *testing.T, db *gorm.DB, warehouseID, productID uint, qty, reserved, safety int64) stockEntity.WarehouseStock {
	t.Helper()
	row := stockEntity.WarehouseStock{
		WarehouseID: warehouseID, ProductID: productID,
		Quantity: qty, ReservedQuantity: reserved, SafetyStock: safety,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	return row
}

func loadStock(t *testing.T, db *gorm.DB, warehouseID, productID uint) stockEntity.WarehouseStock {
	t.Helper()
	var row stockEntity.WarehouseStock
	if err := db.Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).First(&row).Error; err != nil {
		t.Fatalf("load stock: %v", err)
	}
	return row
}

// fakeGateway records alerts for assertions.
type fakeGateway struct {
	calls      int
	recipients []notify.Recipient
	products   [][]notify.LowStockProduct
	err        error
}

func (g *fakeGateway) NotifyLowStock(recipient notify.Recipient, products []notify.LowStockProduct) error {
	g.calls++
	g.recipients = append(g.recipients, recipient)
	g.products = append(g.products, products)
	return g.err
}

func fixedTime(hour, minute int) time.Time {
	return time.Date(2026, 8, 31, hour, minute, 0, 0, time.Local)
}
