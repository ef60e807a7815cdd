package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/kgl-groceries/produce-api/docs"
	"github.com/kgl-groceries/produce-api/internal/api/handler"
	"github.com/kgl-groceries/produce-api/internal/api/middleware"
	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
	"github.com/kgl-groceries/produce-api/internal/core/validation"
)

// Dependencies is everything the router wires into handlers and middleware.
type Dependencies struct {
	Log       zerolog.Logger
	Tokens    ports.TokenService
	Validator middleware.RecordValidator

	Auth         ports.AuthService
	Users        ports.UserService
	Procurements ports.ProcurementService
	Sales        ports.SaleService

	// LoginLimiter throttles POST /users/login. Nil disables throttling.
	LoginLimiter middleware.Limiter
	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handler.Pinger
	// Registerer receives the HTTP request metrics. Nil means the default
	// Prometheus registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "kgl",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	procurementHandler := handler.NewProcurementHandler(deps.Procurements)
	saleHandler := handler.NewSaleHandler(deps.Sales, deps.Validator)

	authn := middleware.Auth(deps.Tokens)
	managerOnly := middleware.RequireRole(domain.RoleManager)
	agentOnly := middleware.RequireRole(domain.RoleSalesAgent)
	validate := func(kind validation.Kind) echo.MiddlewareFunc {
		return middleware.Validate(deps.Validator, kind)
	}

	// --- Users ---
	loginChain := []echo.MiddlewareFunc{validate(validation.Login)}
	if deps.LoginLimiter != nil {
		loginChain = append([]echo.MiddlewareFunc{middleware.RateLimit(deps.LoginLimiter, deps.Log)}, loginChain...)
	}
	users := e.Group("/users")
	users.POST("/login", authHandler.Login, loginChain...)
	users.POST("", userHandler.Create, authn, managerOnly, validate(validation.User))
	users.GET("", userHandler.List, authn)
	users.GET("/:id", userHandler.Get, authn)
	users.PUT("/:id", userHandler.Update, authn, managerOnly, validate(validation.UserUpdate))
	users.DELETE("/:id", userHandler.Delete, authn, managerOnly)

	// --- Procurement ---
	procurement := e.Group("/procurement")
	procurement.POST("", procurementHandler.Create, authn, managerOnly, validate(validation.Procurement))
	procurement.GET("", procurementHandler.List, authn)
	procurement.GET("/:id", procurementHandler.Get, authn)
	procurement.PUT("/:id", procurementHandler.Update, authn, managerOnly, validate(validation.Procurement))
	procurement.DELETE("/:id", procurementHandler.Delete, authn, managerOnly)

	// --- Sales ---
	sales := e.Group("/sales")
	sales.POST("/cash", saleHandler.CreateCash, authn, agentOnly, validate(validation.CashSale))
	sales.POST("/credit", saleHandler.CreateCredit, authn, agentOnly, validate(validation.CreditSale))
	sales.GET("", saleHandler.List, authn)
	sales.GET("/type/:type", saleHandler.ListByType, authn)
	sales.GET("/:id", saleHandler.Get, authn)
	sales.PUT("/:id", saleHandler.Update, authn, agentOnly)
	sales.DELETE("/:id", saleHandler.Delete, authn, agentOnly)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/", handler.Root)
	e.GET("/health", handler.NewHealthHandler().Liveness)                         // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness).Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
