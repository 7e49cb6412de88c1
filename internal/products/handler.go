package products

import (
	"net/http"

	"github.com/freitasmatheusrn/liquid-catalog/pkg/rest"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(c echo.Context) error {
	var input ListProductsInput
	if err := c.Bind(&input); err != nil {
		return rest.NewBadRequestError("parametros de consulta invalidos")
	}

	result, apiErr := h.service.ListProducts(c.Request().Context(), input)
	if apiErr != nil {
		return apiErr
	}

	return c.JSON(http.StatusOK, result)
}
