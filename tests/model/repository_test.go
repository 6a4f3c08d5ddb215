package modeltest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"wms.GO/core/apperr"
	"wms.GO/core/cache"
	entity "wms.GO/model/entity"
	inboundEntity "wms.GO/model/entity/inbound"
	outboundEntity "wms.GO/model/entity/outbound"
	stockEntity "wms.GO/model/entity/stock"
	productRepo "wms.GO/model/repository/product"
	supplierRepo "wms.GO/model/repository/supplier"
	warehouseRepo "wms.GO/model/repository/warehouse"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	cache.GetInstance().Flush()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&entity.Warehouse{}, &entity.Supplier{}, &entity.Product{}, &entity.ApiToken{},
		&stockEntity.WarehouseStock{},
		&inboundEntity.Inbound{}, &inboundEntity.Item{},
		&outboundEntity.Outbound{}, &outboundEntity.Item{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestWarehouseRepository_CreateAndFindByID(t *testing.T) {
	db := testDB(t)
	repo := warehouseRepo.NewWarehouseRepository(db)

	w := &entity.Warehouse{Code: "WH-01", Name: "Seoul Central"}
	if err := repo.Create(w); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.WarehouseID == 0 {
		t.Error("WarehouseID not set after Create")
	}

	found, err := repo.FindByID(w.WarehouseID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Code != "WH-01" {
		t.Errorf("Code = %q, want WH-01", found.Code)
	}
}

func TestWarehouseRepository_DuplicateCode(t *testing.T) {
	db := testDB(t)
	repo := warehouseRepo.NewWarehouseRepository(db)

	if err := repo.Create(&entity.Warehouse{Code: "WH-01", Name: "A"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(&entity.Warehouse{Code: "WH-01", Name: "B"})
	if !apperr.IsKind(err, apperr.KindDuplicateData) {
		t.Errorf("duplicate create kind = %v, want DUPLICATE_DATA", apperr.KindOf(err))
	}
}

func TestWarehouseRepository_SoftDeleteHidesRow(t *testing.T) {
	db := testDB(t)
	repo := warehouseRepo.NewWarehouseRepository(db)

	w := &entity.Warehouse{Code: "WH-01", Name: "Seoul Central"}
	if err := repo.Create(w); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.SoftDelete(w.WarehouseID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if _, err := repo.FindByID(w.WarehouseID); !apperr.IsKind(err, apperr.KindDataNotFound) {
		t.Errorf("FindByID after delete kind = %v, want DATA_NOT_FOUND", apperr.KindOf(err))
	}
	if err := repo.SoftDelete(w.WarehouseID); !apperr.IsKind(err, apperr.KindDataNotFound) {
		t.Errorf("second SoftDelete kind = %v, want DATA_NOT_FOUND", apperr.KindOf(err))
	}

	// The row itself survives for audit.
	var count int64
	db.Model(&entity.Warehouse{}).Where("warehouse_id = ?", w.WarehouseID).Count(&count)
	if count != 1 {
		t.Errorf("physical rows = %d, want 1", count)
	}
}

func TestSupplierRepository_CreateAndList(t *testing.T) {
	db := testDB(t)
	repo := supplierRepo.NewSupplierRepository(db)

	for _, code := range []string{"SUP-01", "SUP-02", "SUP-03"} {
		if err := repo.Create(&entity.Supplier{Code: code, Name: "Supplier " + code}); err != nil {
			t.Fatalf("Create %s: %v", code, err)
		}
	}

	items, total, err := repo.List(0, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(items) != 2 {
		t.Errorf("page size = %d, want 2", len(items))
	}
}

func TestProductRepository_FindByIDs(t *testing.T) {
	db := testDB(t)
	repo := productRepo.NewProductRepository(db)

	p1 := &entity.Product{Code: "P-001", Name: "Widget"}
	p2 := &entity.Product{Code: "P-002", Name: "Gadget"}
	for _, p := range []*entity.Product{p1, p2} {
		if err := repo.Create(p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	known, err := repo.FindByIDs([]uint{p1.ProductID, p2.ProductID, 999})
	if err != nil {
		t.Fatalf("FindByIDs: %v", err)
	}
	if len(known) != 2 {
		t.Errorf("len = %d, want 2", len(known))
	}
	if _, ok := known[999]; ok {
		t.Error("unknown ID present in result")
	}
	if known[p1.ProductID].Name != "Widget" {
		t.Errorf("Name = %q, want Widget", known[p1.ProductID].Name)
	}
}

func TestProductRepository_SearchByNameOrCode(t *testing.T) {
	db := testDB(t)
	repo := productRepo.NewProductRepository(db)

	for _, p := range []*entity.Product{
		{Code: "WID-001", Name: "Steel Widget"},
		{Code: "WID-002", Name: "Brass Widget"},
		{Code: "GAD-001", Name: "Gadget"},
	} {
		if err := repo.Create(p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	hits, err := repo.SearchByNameOrCode("Widget", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("hits = %d, want 2", len(hits))
	}

	hits, err = repo.SearchByNameOrCode("GAD", 10)
	if err != nil {
		t.Fatalf("Search by code: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "Gadget" {
		t.Errorf("code search hits = %v", hits)
	}
}

func TestProductRepository_FindByIDReturnsDetachedCopy(t *testing.T) {
	db := testDB(t)
	repo := productRepo.NewProductRepository(db)

	p := &entity.Product{Code: "P-001", Name: "Widget"}
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := repo.FindByID(p.ProductID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	// Caller-side mutation must stay with the caller, not leak through the
	// cache into later reads.
	first.Name = "scribbled"

	second, err := repo.FindByID(p.ProductID)
	if err != nil {
		t.Fatalf("FindByID again: %v", err)
	}
	if second == first {
		t.Fatal("FindByID handed out the same pointer twice")
	}
	if second.Name != "Widget" {
		t.Errorf("Name = %q after caller-side mutation, want Widget", second.Name)
	}
}
