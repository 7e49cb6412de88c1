package application

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type healthOutput struct {
	Status       string            `json:"status"`
	Checks       map[string]string `json:"checks,omitempty"`
	GenerationID string            `json:"generation_id,omitempty"`
	Products     int               `json:"products"`
}

// Health handles GET /healthz. The catalog keeps being served from memory
// when a dependency is down, so a failed check only degrades the status.
func (app *Application) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	out := healthOutput{Status: "ok"}
	code := http.StatusOK
	if len(app.Checks) > 0 {
		out.Checks = make(map[string]string, len(app.Checks))
	}
	for name, check := range app.Checks {
		if err := check(ctx); err != nil {
			out.Checks[name] = err.Error()
			out.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		out.Checks[name] = "ok"
	}

	if app.Current != nil {
		gen := app.Current.Load().Generation
		out.Products = len(gen.Products)
		if len(gen.Products) > 0 {
			out.GenerationID = gen.ID.String()
		}
	}

	return c.JSON(code, out)
}
