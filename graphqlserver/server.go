package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"wms.GO/graphql"
	"wms.GO/graphql/registry"
	productRepo "wms.GO/model/repository/product"
	stockRepo "wms.GO/model/repository/stock"
)

// RootResolver is the root for graphql-go. Read-only: queries delegate to the
// repository layer, mutations stay on the REST surface.
type RootResolver struct {
	DB *gorm.DB
}

func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB}
}

// QueryResolver implements Query fields.
type QueryResolver struct {
	db *gorm.DB
}

// WarehouseStockView mirrors the joined ledger row with graphql-go field types.
type WarehouseStockView struct {
	WarehouseID       int32
	WarehouseName     string
	ProductID         int32
	ProductCode       string
	ProductName       string
	Quantity          int32
	ReservedQuantity  int32
	AvailableQuantity int32
	SafetyStock       int32
}

// ProductView mirrors the product entity with graphql-go field types.
type ProductView struct {
	ProductID  int32
	Code       string
	Name       string
	SupplierID int32
	UnitPrice  float64
}

// WarehouseStocksArgs matches the warehouseStocks query arguments.
type WarehouseStocksArgs struct {
	WarehouseID     *int32
	ProductID       *int32
	BelowSafetyOnly *bool
}

func (r *QueryResolver) WarehouseStocks(ctx context.Context, args WarehouseStocksArgs) ([]*WarehouseStockView, error) {
	params := stockRepo.SearchParams{Size: 500}
	if args.WarehouseID != nil {
		params.WarehouseID = uint(*args.WarehouseID)
	}
	if args.ProductID != nil {
		params.ProductID = uint(*args.ProductID)
	}
	if args.BelowSafetyOnly != nil {
		params.BelowSafetyOnly = *args.BelowSafetyOnly
	}
	rows, _, err := stockRepo.NewStockRepository(r.db).Search(params)
	if err != nil {
		return nil, err
	}
	out := make([]*WarehouseStockView, 0, len(rows))
	for _, row := range rows {
		out = append(out, &WarehouseStockView{
			WarehouseID:       int32(row.WarehouseID),
			WarehouseName:     row.WarehouseName,
			ProductID:         int32(row.ProductID),
			ProductCode:       row.ProductCode,
			ProductName:       row.ProductName,
			Quantity:          int32(row.Quantity),
			ReservedQuantity:  int32(row.ReservedQuantity),
			AvailableQuantity: int32(row.Available),
			SafetyStock:       int32(row.SafetyStock),
		})
	}
	return out, nil
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	ID int32
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*ProductView, error) {
	p, err := productRepo.NewProductRepository(r.db).FindByID(uint(args.ID))
	if err != nil {
		return nil, err
	}
	return &ProductView{
		ProductID:  int32(p.ProductID),
		Code:       p.Code,
		Name:       p.Name,
		SupplierID: int32(p.SupplierID),
		UnitPrice:  p.UnitPrice,
	}, nil
}

// ProductsArgs matches the products query arguments (defaults in schema: pageSize=20, currentPage=1).
type ProductsArgs struct {
	PageSize    int32
	CurrentPage int32
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) ([]*ProductView, error) {
	ps, cp := int(args.PageSize), int(args.CurrentPage)
	if ps <= 0 {
		ps = 20
	}
	if cp <= 0 {
		cp = 1
	}
	items, _, err := productRepo.NewProductRepository(r.db).List(cp-1, ps)
	if err != nil {
		return nil, err
	}
	out := make([]*ProductView, 0, len(items))
	for i := range items {
		p := items[i]
		out = append(out, &ProductView{
			ProductID:  int32(p.ProductID),
			Code:       p.Code,
			Name:       p.Name,
			SupplierID: int32(p.SupplierID),
			UnitPrice:  p.UnitPrice,
		})
	}
	return out, nil
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
