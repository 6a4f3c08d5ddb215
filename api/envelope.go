package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wms.GO/core/apperr"
)

// Envelope is the common JSON response shape.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Paged wraps a listing with its paging metadata.
type Paged struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
	Total int64       `json:"total"`
}

// OK writes a success envelope with the given HTTP status.
func OK(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, Envelope{Status: "success", Message: "ok", Data: data})
}

// Fail maps a domain error to its HTTP status and writes an error envelope.
func Fail(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	return c.JSON(status, Envelope{Status: "error", Message: apperr.MessageOf(err)})
}

// BadRequest writes a 400 envelope for malformed request bodies.
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Status: "error", Message: msg})
}

// ParamUint parses a numeric path parameter.
func ParamUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.KindInvalidInput, "invalid %s %q", name, c.Param(name))
	}
	return uint(v), nil
}

// QueryUint parses a numeric query parameter, 0 when absent.
func QueryUint(c echo.Context, name string) uint {
	v, _ := strconv.ParseUint(c.QueryParam(name), 10, 32)
	return uint(v)
}

// Paging reads page/size query params with the 0/50 defaults.
func Paging(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, _ = strconv.Atoi(c.QueryParam("size"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 500 {
		size = 50
	}
	return page, size
}
