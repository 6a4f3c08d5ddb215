package apitest

import (
	"fmt"
	"net/http"
	"testing"

	stockEntity "wms.GO/model/entity/stock"
	stockRepo "wms.GO/model/repository/stock"
)

type pagedStocks struct {
	Items []stockRepo.View `json:"items"`
	Total int64            `json:"total"`
}

func TestStockAPI_Search(t *testing.T) {
	e, db := setupServer(t)
	w := seedWorld(t, db)
	seedStock(t, db, w.Warehouse.WarehouseID, w.Widget.ProductID, 100, 95, 10)

	code, env := doJSON(t, e, http.MethodGet, "/api/warehouse-stocks", nil)
	wantStatus(t, code, http.StatusOK, env)
	var page pagedStocks
	decodeData(t, env, &page)
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("page = %+v, want 1 row", page)
	}
	row := page.Items[0]
	if row.Available != 5 || row.ProductName != "Widget" {
		t.Errorf("row = %+v, want available 5 for Widget", row)
	}

	code, env = doJSON(t, e, http.MethodGet, "/api/warehouse-stocks?belowSafetyOnly=true", nil)
	wantStatus(t, code, http.StatusOK, env)
	decodeData(t, env, &page)
	if page.Total != 1 {
		t.Errorf("below-safety total = %d, want 1", page.Total)
	}

	code, env = doJSON(t, e, http.MethodGet, "/api/warehouse-stocks?productName=nomatch", nil)
	wantStatus(t, code, http.StatusOK, env)
	decodeData(t, env, &page)
	if page.Total != 0 {
		t.Errorf("no-match total = %d, want 0", page.Total)
	}
}

func TestStockAPI_IncreaseAndDecrease(t *testing.T) {
	e, db := setupServer(t)
	w := seedWorld(t, db)

	code, env := doJSON(t, e, http.MethodPost, "/api/warehouse-stocks/increase", map[string]interface{}{
		"warehouseId": w.Warehouse.WarehouseID,
		"productId":   w.Widget.ProductID,
		"amount":      20,
	})
	wantStatus(t, code, http.StatusOK, env)
	var row stockEntity.WarehouseStock
	decodeData(t, env, &row)
	if row.Quantity != 20 {
		t.Errorf("quantity = %d, want 20", row.Quantity)
	}

	code, env = doJSON(t, e, http.MethodPost, "/api/warehouse-stocks/decrease", map[string]interface{}{
		"warehouseId": w.Warehouse.WarehouseID,
		"productId":   w.Widget.ProductID,
		"amount":      5,
	})
	wantStatus(t, code, http.StatusOK, env)
	decodeData(t, env, &row)
	if row.Quantity != 15 {
		t.Errorf("quantity = %d, want 15", row.Quantity)
	}

	// Negative adjustments are refused.
	code, env = doJSON(t, e, http.MethodPost, "/api/warehouse-stocks/increase", map[string]interface{}{
		"warehouseId": w.Warehouse.WarehouseID,
		"productId":   w.Widget.ProductID,
		"amount":      -1,
	})
	wantStatus(t, code, http.StatusBadRequest, env)
}

func TestStockAPI_UpdateSafety(t *testing.T) {
	e, db := setupServer(t)
	w := seedWorld(t, db)
	seedStock(t, db, w.Warehouse.WarehouseID, w.Widget.ProductID, 10, 0, 0)

	code, env := doJSON(t, e, http.MethodPut, "/api/warehouse-stocks/safety", map[string]interface{}{
		"warehouseId": w.Warehouse.WarehouseID,
		"productId":   w.Widget.ProductID,
		"safetyStock": 8,
	})
	wantStatus(t, code, http.StatusOK, env)
	var row stockEntity.WarehouseStock
	decodeData(t, env, &row)
	if row.SafetyStock != 8 {
		t.Errorf("safety = %d, want 8", row.SafetyStock)
	}

	code, env = doJSON(t, e, http.MethodPut, "/api/warehouse-stocks/safety", map[string]interface{}{
		"warehouseId": w.Warehouse.WarehouseID,
		"productId":   999,
		"safetyStock": 8,
	})
	wantStatus(t, code, http.StatusNotFound, env)
}

func TestRealtimeAPI_Availability(t *testing.T) {
	e, db := setupServer(t)
	w := seedWorld(t, db)
	seedStock(t, db, w.Warehouse.WarehouseID, w.Widget.ProductID, 30, 10, 25)

	path := fmt.Sprintf("/api/realtime/availability?warehouseId=%d&productId=%d", w.Warehouse.WarehouseID, w.Widget.ProductID)
	code, env := doJSON(t, e, http.MethodGet, path, nil)
	wantStatus(t, code, http.StatusOK, env)
	var resp struct {
		AvailableQuantity int64 `json:"availableQuantity"`
		BelowSafetyStock  bool  `json:"belowSafetyStock"`
	}
	decodeData(t, env, &resp)
	if resp.AvailableQuantity != 20 {
		t.Errorf("available = %d, want 20", resp.AvailableQuantity)
	}
	if !resp.BelowSafetyStock {
		t.Error("20 under safety 25 not flagged low")
	}

	code, env = doJSON(t, e, http.MethodGet, "/api/realtime/availability?warehouseId=1&productId=999", nil)
	wantStatus(t, code, http.StatusNotFound, env)

	code, env = doJSON(t, e, http.MethodGet, "/api/realtime/availability", nil)
	wantStatus(t, code, http.StatusBadRequest, env)
}

func TestWarehouseAPI_CRUD(t *testing.T) {
	e, db := setupServer(t)
	seedWorld(t, db)

	code, env := doJSON(t, e, http.MethodPost, "/api/warehouses", map[string]string{"code": "WH-02", "name": "Busan"})
	wantStatus(t, code, http.StatusCreated, env)
	var created struct {
		WarehouseID uint `json:"warehouseId"`
	}
	decodeData(t, env, &created)

	// Duplicate code conflicts.
	code, env = doJSON(t, e, http.MethodPost, "/api/warehouses", map[string]string{"code": "WH-02", "name": "Other"})
	wantStatus(t, code, http.StatusConflict, env)

	code, env = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/warehouses/%d", created.WarehouseID), map[string]string{"name": "Busan Port"})
	wantStatus(t, code, http.StatusOK, env)

	code, env = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/warehouses/%d", created.WarehouseID), nil)
	wantStatus(t, code, http.StatusOK, env)

	code, env = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/warehouses/%d", created.WarehouseID), nil)
	wantStatus(t, code, http.StatusNotFound, env)
}

func TestProductAPI_SearchFallsBackToSQL(t *testing.T) {
	e, db := setupServer(t)
	seedWorld(t, db)

	code, env := doJSON(t, e, http.MethodGet, "/api/products?q=Widg", nil)
	wantStatus(t, code, http.StatusOK, env)
	var page struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	decodeData(t, env, &page)
	if len(page.Items) != 1 || page.Items[0].Name != "Widget" {
		t.Errorf("search items = %+v, want Widget", page.Items)
	}
}
