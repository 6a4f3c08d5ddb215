package inbound

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"wms.GO/api"
	inboundEntity "wms.GO/model/entity/inbound"
	inboundRepo "wms.GO/model/repository/inbound"
	inboundService "wms.GO/service/inbound"
)

func init() {
	api.RegisterModule(RegisterInboundRoutes)
}

type createRequest struct {
	WarehouseID  uint                       `json:"warehouseId"`
	SupplierID   uint                       `json:"supplierId"`
	ExpectedDate string                     `json:"expectedDate"`
	Products     []inboundService.ItemInput `json:"products"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func RegisterInboundRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := inboundService.NewService(db)
	g := apiGroup.Group("/inbounds")

	g.POST("", func(c echo.Context) error {
		var body createRequest
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		expected, err := time.ParseInLocation("2006-01-02", body.ExpectedDate, time.Local)
		if err != nil {
			return api.BadRequest(c, "expectedDate must be YYYY-MM-DD")
		}
		in, err := svc.Create(body.WarehouseID, body.SupplierID, expected, body.Products)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusCreated, in)
	})

	g.PUT("/:id/status", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		var body statusRequest
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		target, err := inboundEntity.ParseStatus(body.Status)
		if err != nil {
			return api.Fail(c, err)
		}
		in, err := svc.UpdateStatus(id, target)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, in)
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		if err := svc.Delete(id); err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, nil)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		in, err := svc.Get(id)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, in)
	})

	g.GET("", listHandler(svc, func(c echo.Context, p *inboundRepo.ListParams) error { return nil }))
	g.GET("/warehouses/:id", listHandler(svc, func(c echo.Context, p *inboundRepo.ListParams) error {
		id, err := api.ParamUint(c, "id")
		p.WarehouseID = id
		return err
	}))
	g.GET("/products/:id", listHandler(svc, func(c echo.Context, p *inboundRepo.ListParams) error {
		id, err := api.ParamUint(c, "id")
		p.ProductID = id
		return err
	}))
	g.GET("/suppliers/:id", listHandler(svc, func(c echo.Context, p *inboundRepo.ListParams) error {
		id, err := api.ParamUint(c, "id")
		p.SupplierID = id
		return err
	}))
}

func listHandler(svc *inboundService.Service, scope func(echo.Context, *inboundRepo.ListParams) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, size := api.Paging(c)
		params := inboundRepo.ListParams{
			WarehouseID: api.QueryUint(c, "warehouseId"),
			SupplierID:  api.QueryUint(c, "supplierId"),
			Status:      inboundEntity.Status(c.QueryParam("status")),
			Page:        page,
			Size:        size,
		}
		if err := scope(c, &params); err != nil {
			return api.Fail(c, err)
		}
		items, total, err := svc.List(params)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, api.Paged{Items: items, Page: page, Size: size, Total: total})
	}
}
