package realtime

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"wms.GO/api"
	"wms.GO/core/apperr"
	entity "wms.GO/model/entity"
	stockEntity "wms.GO/model/entity/stock"
	productRepo "wms.GO/model/repository/product"
	stockRepo "wms.GO/model/repository/stock"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// AvailabilityResponse for the realtime availability endpoint.
type AvailabilityResponse struct {
	WarehouseID       uint   `json:"warehouseId"`
	ProductID         uint   `json:"productId"`
	ProductCode       string `json:"productCode"`
	ProductName       string `json:"productName"`
	Quantity          int64  `json:"quantity"`
	ReservedQuantity  int64  `json:"reservedQuantity"`
	AvailableQuantity int64  `json:"availableQuantity"`
	BelowSafetyStock  bool   `json:"belowSafetyStock"`
}

// RegisterRealtimeRoutes sets up the low-latency availability lookup. The
// stock row comes from the Redis read-through cache, the product row from
// the in-process cache; the two fetches run in parallel.
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	stocks := stockRepo.NewStockRepository(db)
	products := productRepo.NewProductRepository(db)
	g := apiGroup.Group("/realtime")

	g.GET("/availability", func(c echo.Context) error {
		start := time.Now()

		warehouseID := api.QueryUint(c, "warehouseId")
		productID := api.QueryUint(c, "productId")
		if warehouseID == 0 || productID == 0 {
			return api.BadRequest(c, "warehouseId and productId are required")
		}

		var (
			row     *stockEntity.WarehouseStock
			product *entity.Product
		)

		eg := new(errgroup.Group)
		eg.Go(func() error {
			var err error
			row, err = stocks.FindCached(warehouseID, productID)
			return err
		})
		eg.Go(func() error {
			var err error
			product, err = products.FindByID(productID)
			return err
		})
		err := eg.Wait()

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))

		if err != nil {
			if apperr.IsKind(err, apperr.KindStockNotFound) || apperr.IsKind(err, apperr.KindDataNotFound) {
				return api.Fail(c, err)
			}
			return api.Fail(c, apperr.Wrap(apperr.KindInternal, err, "availability lookup failed"))
		}

		return api.OK(c, http.StatusOK, AvailabilityResponse{
			WarehouseID:       warehouseID,
			ProductID:         productID,
			ProductCode:       product.Code,
			ProductName:       product.Name,
			Quantity:          row.Quantity,
			ReservedQuantity:  row.ReservedQuantity,
			AvailableQuantity: row.AvailableQuantity(),
			BelowSafetyStock:  row.IsBelowSafetyStock(),
		})
	})
}
