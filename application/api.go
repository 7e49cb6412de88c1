package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	configs "github.com/freitasmatheusrn/liquid-catalog/configs"
	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/freitasmatheusrn/liquid-catalog/internal/ingestion"
	"github.com/freitasmatheusrn/liquid-catalog/internal/menu"
	"github.com/freitasmatheusrn/liquid-catalog/internal/metrics"
	"github.com/freitasmatheusrn/liquid-catalog/internal/products"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/auth"
	"github.com/freitasmatheusrn/liquid-catalog/pkg/rest"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout  = 15 * time.Second
	writeTimeout     = 30 * time.Second
	defaultRunWindow = 10 * time.Minute
)

type Application struct {
	Config  configs.Configs
	Logger  *zap.Logger
	Current *catalog.Current
	Trigger ingestion.Trigger
	Status  ingestion.StatusReader
	Metrics *metrics.Registry
	Checks  map[string]HealthCheck
}

func (app *Application) Mount() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = app.CustomErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:  true,
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {

			status := v.Status
			if v.Error != nil {
				switch err := v.Error.(type) {
				case *echo.HTTPError:
					status = err.Code
				case *rest.ApiErr:
					status = err.Code
				}
			}

			if app.Metrics != nil {
				app.Metrics.ObserveRequest(c.Path(), status)
			}

			fields := []zap.Field{
				zap.Duration("latency", v.Latency),
				zap.Int("status", status),
				zap.String("uri", v.URI),
				zap.String("method", v.Method),
			}
			switch {
			case status >= 500:
				app.Logger.Error("request", append(fields, zap.Error(v.Error))...)
			case status >= 400:
				app.Logger.Warn("request", fields...)
			default:
				app.Logger.Info("request", fields...)
			}
			return nil
		},
	}))
	if app.Config.RateLimit > 0 {
		e.Use(app.rateLimiter())
	}

	productService := products.NewService(app.Current, app.Logger)
	productHandler := products.NewHandler(productService)

	menuService := menu.NewService(app.Current)
	menuHandler := menu.NewHandler(menuService)

	e.GET("/healthz", app.Health)
	if app.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(app.Metrics.Handler()))
	}

	// Public catalog routes
	e.GET("/products", productHandler.ListProducts)
	e.GET("/brands", menuHandler.ListBrands)
	e.GET("/brands/all", menuHandler.ListAllBrands)
	e.GET("/tags", menuHandler.ListTags)
	e.GET("/tags/all", menuHandler.ListAllTags)
	e.GET("/coils", menuHandler.ListCoils)

	// Operator routes (JWT required)
	if app.Config.JWTSecret == "" {
		app.Logger.Warn("JWT_SECRET not set, admin routes disabled")
	}
	if app.Trigger != nil && app.Config.JWTSecret != "" {
		ingestionHandler := ingestion.NewHandler(app.Trigger, app.Status)

		admin := e.Group("/admin")
		admin.Use(echojwt.WithConfig(echojwt.Config{
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.JWTCustomClaims)
			},
			SigningKey:  []byte(app.Config.JWTSecret),
			TokenLookup: "header:Authorization:Bearer ",
			ErrorHandler: func(c echo.Context, err error) error {
				return rest.NewUnauthorizedRequestError("token invalido ou ausente")
			},
		}))
		admin.Use(auth.RequireRole(auth.RoleOperator))

		admin.POST("/ingestions", ingestionHandler.TriggerRun, extendWriteDeadline(app.runWriteTimeout()))
		admin.GET("/ingestions/last", ingestionHandler.LastRun)
	}

	return e
}

// runWriteTimeout covers a manual run, which answers only when the run ends.
func (app *Application) runWriteTimeout() time.Duration {
	window := app.Config.IngestionTimeout
	if window <= 0 {
		window = defaultRunWindow
	}
	return window + writeTimeout
}

// extendWriteDeadline replaces the server-wide write timeout for one route.
func extendWriteDeadline(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := http.NewResponseController(c.Response().Writer)
			// ErrNotSupported outside a real connection
			_ = rc.SetWriteDeadline(time.Now().Add(d))
			return next(c)
		}
	}
}

func (app *Application) rateLimiter() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/healthz", "/metrics":
				return true
			}
			return false
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(app.Config.RateLimit),
			Burst:     app.Config.RateBurst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return rest.NewForbiddenError("nao foi possivel identificar o cliente")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return rest.NewTooManyRequestsError("muitas requisicoes, tente novamente em instantes")
		},
	})
}

// Run serves h until ctx is cancelled, then drains in-flight requests.
func (app *Application) Run(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + app.Config.WebServerPort,
		Handler:      h,
		WriteTimeout: writeTimeout,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("server has started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
