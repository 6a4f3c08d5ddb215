package supplier

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"wms.GO/api"
	entity "wms.GO/model/entity"
	supplierRepo "wms.GO/model/repository/supplier"
)

func init() {
	api.RegisterModule(RegisterSupplierRoutes)
}

func RegisterSupplierRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := supplierRepo.NewSupplierRepository(db)
	g := apiGroup.Group("/suppliers")

	g.POST("", func(c echo.Context) error {
		var s entity.Supplier
		if err := c.Bind(&s); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		if s.Code == "" || s.Name == "" {
			return api.BadRequest(c, "code and name are required")
		}
		if err := repo.Create(&s); err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusCreated, s)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		s, err := repo.FindByID(id)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, s)
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
		var body entity.Supplier
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		existing.Name = body.Name
		existing.ManagerName = body.ManagerName
		existing.ManagerEmail = body.ManagerEmail
		existing.ManagerPhone = body.ManagerPhone
		existing.Address = body.Address
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
