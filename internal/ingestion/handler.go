package ingestion

import (
	"context"
	"errors"
	"net/http"

	"github.com/freitasmatheusrn/liquid-catalog/internal/database"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/rest"
	"github.com/labstack/echo/v4"
)

// Trigger starts a run and waits for its outcome.
type Trigger interface {
	RunNow(ctx context.Context, trigger string) (*RunStatus, error)
}

type StatusReader interface {
	LastRun(ctx context.Context) (*RunStatus, error)
}

type Handler struct {
	trigger Trigger
	status  StatusReader
}

func NewHandler(trigger Trigger, status StatusReader) *Handler {
	return &Handler{trigger: trigger, status: status}
}

// TriggerRun handles POST /admin/ingestions
func (h *Handler) TriggerRun(c echo.Context) error {
	status, err := h.trigger.RunNow(c.Request().Context(), TriggerManual)
	if errors.Is(err, ErrRunInProgress) {
		return rest.NewConflictError("uma atualizacao do catalogo ja esta em andamento")
	}
	if err != nil {
		var apiErr *rest.ApiErr
		var rf *ReplaceFailure
		if errors.As(err, &rf) {
			apiErr = database.GetError(rf.Err)
		} else {
			apiErr = rest.NewInternalServerError("falha na atualizacao do catalogo")
			apiErr.Causes = []rest.Causes{{Field: "error", Message: err.Error()}}
		}
		if status != nil {
			apiErr.Causes = append(apiErr.Causes, rest.Causes{Field: "run_id", Message: status.RunID})
		}
		return apiErr
	}

	return c.JSON(http.StatusOK, status)
}

// LastRun handles GET /admin/ingestions/last
func (h *Handler) LastRun(c echo.Context) error {
	status, err := h.status.LastRun(c.Request().Context())
	if err != nil {
		return rest.NewServiceUnavailableError("status da ultima atualizacao indisponivel")
	}
	if status == nil {
		return rest.NewNotFoundError("nenhuma atualizacao registrada")
	}
	return c.JSON(http.StatusOK, status)
}
