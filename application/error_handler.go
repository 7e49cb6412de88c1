package application

import (
	"errors"
	"net/http"

	"github.com/freitasmatheusrn/liquid-catalog/pkg/rest"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *Application) CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *rest.ApiErr
	var he *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Code >= http.StatusInternalServerError {
			a.Logger.Error("request failed",
				zap.Int("code", apiErr.Code),
				zap.String("message", apiErr.Message),
				zap.Any("causes", apiErr.Causes),
			)
		}
	case errors.As(err, &he):
		message, ok := he.Message.(string)
		if !ok {
			message = http.StatusText(he.Code)
		}
		apiErr = rest.NewApiErr(message, http.StatusText(he.Code), he.Code, nil)
	default:
		a.Logger.Error("unhandled error", zap.Error(err))
		apiErr = rest.NewInternalServerError("Erro interno do servidor")
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(apiErr.Code)
		return
	}
	c.JSON(apiErr.Code, apiErr)
}
