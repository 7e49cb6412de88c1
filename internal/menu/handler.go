package menu

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListBrands handles GET /brands
func (h *Handler) ListBrands(c echo.Context) error {
	result, apiErr := h.service.ListBrands(c.Request().Context(), c.QueryParam("search_in"))
	if apiErr != nil {
		return apiErr
	}
	return c.JSON(http.StatusOK, result)
}

// ListAllBrands handles GET /brands/all
func (h *Handler) ListAllBrands(c echo.Context) error {
	result, apiErr := h.service.ListAllBrands(c.Request().Context())
	if apiErr != nil {
		return apiErr
	}
	return c.JSON(http.StatusOK, result)
}

// ListTags handles GET /tags
func (h *Handler) ListTags(c echo.Context) error {
	result, apiErr := h.service.ListTags(c.Request().Context(), c.QueryParam("search_in"))
	if apiErr != nil {
		return apiErr
	}
	return c.JSON(http.StatusOK, result)
}

// ListAllTags handles GET /tags/all
func (h *Handler) ListAllTags(c echo.Context) error {
	result, apiErr := h.service.ListAllTags(c.Request().Context())
	if apiErr != nil {
		return apiErr
	}
	return c.JSON(http.StatusOK, result)
}

// ListCoils handles GET /coils
func (h *Handler) ListCoils(c echo.Context) error {
	result, apiErr := h.service.ListCoils(c.Request().Context())
	if apiErr != nil {
		return apiErr
	}
	return c.JSON(http.StatusOK, result)
}
