package outbound

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"wms.GO/api"
	outboundEntity "wms.GO/model/entity/outbound"
	outboundRepo "wms.GO/model/repository/outbound"
	notifyService "wms.GO/service/notify"
	outboundService "wms.GO/service/outbound"
)

func init() {
	api.RegisterModule(RegisterOutboundRoutes)
}

type createRequest struct {
	WarehouseID           uint                        `json:"warehouseId"`
	RequestedDate         string                      `json:"requestedDate"`
	RecipientName         string                      `json:"recipientName"`
	RecipientContact      string                      `json:"recipientContact"`
	DeliveryPostcode      string                      `json:"deliveryPostcode"`
	DeliveryBaseAddress   string                      `json:"deliveryBaseAddress"`
	DeliveryDetailAddress string                      `json:"deliveryDetailAddress"`
	DeliveryMemo          *string                     `json:"deliveryMemo,omitempty"`
	Products              []outboundService.ItemInput `json:"products"`
}

func RegisterOutboundRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := outboundService.NewService(db, notifyService.NewGateway())
	g := apiGroup.Group("/outbounds")

	g.POST("", func(c echo.Context) error {
		var body createRequest
		if err := c.Bind(&body); err != nil {
			return api.BadRequest(c, "invalid request body")
		}
		requested, err := time.ParseInLocation("2006-01-02", body.RequestedDate, time.Local)
		if err != nil {
			return api.BadRequest(c, "requestedDate must be YYYY-MM-DD")
		}
		detail, err := svc.Create(outboundService.CreateInput{
			WarehouseID:           body.WarehouseID,
			RecipientName:         body.RecipientName,
			RecipientContact:      body.RecipientContact,
			DeliveryPostcode:      body.DeliveryPostcode,
			DeliveryBaseAddress:   body.DeliveryBaseAddress,
			DeliveryDetailAddress: body.DeliveryDetailAddress,
			DeliveryMemo:          body.DeliveryMemo,
			RequestedDate:         requested,
			Items:                 body.Products,
		})
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusCreated, detail)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		detail, err := svc.Get(id)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, detail)
	})

	g.GET("", func(c echo.Context) error {
		page, size := api.Paging(c)
		items, total, err := svc.List(outboundRepo.ListParams{
			WarehouseID: api.QueryUint(c, "warehouseId"),
			Status:      outboundEntity.Status(c.QueryParam("status")),
			Page:        page,
			Size:        size,
		})
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, api.Paged{Items: items, Page: page, Size: size, Total: total})
	})

	g.POST("/:id/pick", transitionHandler(svc.StartPicking))
	g.POST("/:id/complete", transitionHandler(svc.Complete))
	g.POST("/:id/cancel", transitionHandler(svc.Cancel))
}

func transitionHandler(op func(uint) (*outboundEntity.Outbound, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParamUint(c, "id")
		if err != nil {
			return api.Fail(c, err)
		}
		o, err := op(id)
		if err != nil {
			return api.Fail(c, err)
		}
		return api.OK(c, http.StatusOK, o)
	}
}
