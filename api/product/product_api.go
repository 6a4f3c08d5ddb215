package product

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"wms.GO/api"
	entity "wms.GO/model/entity"
	productRepo "wms.GO/model/repository/product"
	searchService "wms.GO/service/search"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

func RegisterProductRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := productRepo.NewProductRepository(db)
	search := searchService.NewService(db)
	g := apiGroup.Group("/products")

	g.POST("", func(c echo.Context) error {
		var p entity.Product
		if err := c.Bind(&p); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		if p.Code == "" || p.Name == "" {
			return api.BadRequest(c, "code and name are required")
		}
		if err := repo.Create(&p); err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusCreated, p)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		p, err := repo.FindByID(id)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, p)
	})

	// GET /api/products?q=widget searches name/code (Elasticsearch when
	// configured, SQL LIKE otherwise); without q it pages the full list.
	g.GET("", func(c echo.Context) error {
		page, size := api.Paging(c)
		if q := c.QueryParam("q"); q != "" {
			items, err := search.SearchProducts(q, size)
			if err != nil {
				return api.Fail(c, err)
			}
			return api.OK(c, http.StatusOK, api.Paged{Items: items, Page: 0, Size: size, Total: int64(len(items))})
		}
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
		var body entity.Product
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		existing.Name = body.Name
		existing.SupplierID = body.SupplierID
		existing.UnitPrice = body.UnitPrice
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
