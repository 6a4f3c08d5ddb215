package apitest

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"wms.GO/api"
	_ "wms.GO/api/inbound"
	_ "wms.GO/api/outbound"
	_ "wms.GO/api/product"
	_ "wms.GO/api/realtime"
	_ "wms.GO/api/stock"
	_ "wms.GO/api/supplier"
	_ "wms.GO/api/warehouse"
	"wms.GO/core/cache"
	"wms.GO/core/registry"
	entity "wms.GO/model/entity"
	inboundEntity "wms.GO/model/entity/inbound"
	outboundEntity "wms.GO/model/entity/outbound"
	stockEntity "wms.GO/model/entity/stock"
)

func setupServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	cache.GetInstance().Flush()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
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

	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)
	e := echo.New()
	api.ApplyModules(e.Group("/api"), db)
	return e, db
}

type world struct {
	Warehouse entity.Warehouse
	Supplier  entity.Supplier
	Widget    entity.Product
}

func seedWorld(t *testing.T, db *gorm.DB) world {
	t.Helper()
	w := world{
		Warehouse: entity.Warehouse{Code: "WH-01", Name: "Seoul Central"},
		Supplier:  entity.Supplier{Code: "SUP-01", Name: "Acme", ManagerEmail: "lee@acme.example"},
	}
	if err := db.Create(&w.Warehouse).Error; err != nil {
		t.Fatalf("seed warehouse: %v", err)
	}
	if err := db.Create(&w.Supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	w.Widget = entity.Product{Code: "P-001", Name: "Widget", SupplierID: w.Supplier.SupplierID}
	if err := db.Create(&w.Widget).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return w
}

func seedStock(t *testing.T, db *gorm.DB, warehouseID, productID uint, qty, reserved, safety int64) {
	t.Helper()
	row := stockEntity.WarehouseStock{
		WarehouseID: warehouseID, ProductID: productID,
		Quantity: qty, ReservedQuantity: reserved, SafetyStock: safety,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data %q: %v", string(env.Data), err)
	}
}

func wantStatus(t *testing.T, got int, want int, env envelope) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d (message %q), want %d", got, env.Message, want)
	}
}
