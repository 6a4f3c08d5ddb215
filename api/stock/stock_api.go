package stock

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"wms.GO/api"
	stockRepo "wms.GO/model/repository/stock"
	stockService "wms.GO/service/stock"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

type adjustRequest struct {
	WarehouseID uint  `json:"warehouseId"`
	ProductID   uint  `json:"productId"`
	Amount      int64 `json:"amount"`
}

type safetyRequest struct {
	WarehouseID uint  `json:"warehouseId"`
	ProductID   uint  `json:"productId"`
	SafetyStock int64 `json:"safetyStock"`
}

func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := stockService.NewService(db)
	g := apiGroup.Group("/warehouse-stocks")

	g.GET("", func(c echo.Context) error {
		page, size := api.Paging(c)
		params := stockRepo.SearchParams{
			WarehouseID:     api.QueryUint(c, "warehouseId"),
			ProductID:       api.QueryUint(c, "productId"),
			ProductName:     c.QueryParam("productName"),
			ProductCode:     c.QueryParam("productCode"),
			BelowSafetyOnly: c.QueryParam("belowSafetyOnly") == "true",
			SortBy:          c.QueryParam("sortBy"),
			SortDir:         c.QueryParam("sortDir"),
			Page:            page,
			Size:            size,
		}
		items, total, err := svc.Search(params)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, api.Paged{Items: items, Page: page, Size: size, Total: total})
	})

	g.POST("/increase", func(c echo.Context) error {
		var body adjustRequest
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		row, err := svc.IncreaseStock(body.WarehouseID, body.ProductID, body.Amount)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, row)
	})

	g.POST("/decrease", func(c echo.Context) error {
		var body adjustRequest
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		row, err := svc.DecreaseStock(body.WarehouseID, body.ProductID, body.Amount)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, row)
	})

	g.PUT("/safety", func(c echo.Context) error {
		var body safetyRequest
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		row, err := svc.UpdateSafetyStock(body.WarehouseID, body.ProductID, body.SafetyStock)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, row)
	})
}
