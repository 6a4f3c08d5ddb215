package warehouse

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"wms.GO/api"
	entity "wms.GO/model/entity"
	warehouseRepo "wms.GO/model/repository/warehouse"
)

func init() {
	api.RegisterModule(RegisterWarehouseRoutes)
}

func RegisterWarehouseRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := warehouseRepo.NewWarehouseRepository(db)
	g := apiGroup.Group("/warehouses")

	g.POST("", func(c echo.Context) error {
		var w entity.Warehouse
		if err := c.Bind(&w); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		if w.Code == "" || w.Name == "" {
			return api.BadRequest(c, "code and name are required")
		}
		if err := repo.Create(&w); err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusCreated, w)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		w, err := repo.FindByID(id)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, w)
	})

	g.GET("", func(c echo.Context) error {
		page, size := api.Paging(c)
		items, total, err := repo.List(page, size)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, api.Paged{Items: items, Page: page, Size: size, Total: total})
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		existing, err := repo.FindByID(id)
		if err != nil {
			return api.Fail(c, err)
		}
		var body entity.Warehouse
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		existing.Name = body.Name
		existing.Address = body.Address
		existing.ManagerName = body.ManagerName
		if err := repo.Update(existing); err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, existing)
	})

	g.DELETE("/:id", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		if err := repo.SoftDelete(id); err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, nil)
	})
}
