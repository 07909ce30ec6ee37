package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/handler"
	"github.com/sefazor/taskflow-client/internal/middleware"
	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/views"
	"github.com/sefazor/taskflow-client/pkg/metrics"
)

// Access controls who may open a route.
type Access int

const (
	Public Access = iota
	// Guest routes are for anonymous visitors only.
	Guest
	Protected
)

type Route struct {
	Method    string
	Path      string
	Access    Access
	Handler   fiber.Handler
	// Throttled routes share a per-client rate limit.
	Throttled bool
}

type Handlers struct {
	Auth         *handler.AuthHandler
	Organization *handler.OrganizationHandler
	Payment      *handler.PaymentHandler
}

// Routes is the page table of the front-end.
func Routes(h Handlers) []Route {
	return []Route{
		{Method: fiber.MethodGet, Path: "/login", Access: Guest, Handler: h.Auth.LoginPage},
		{Method: fiber.MethodPost, Path: "/login", Access: Guest, Handler: h.Auth.Login, Throttled: true},
		{Method: fiber.MethodGet, Path: "/register", Access: Guest, Handler: h.Auth.RegisterPage},
		{Method: fiber.MethodPost, Path: "/register", Access: Guest, Handler: h.Auth.Register, Throttled: true},
		{Method: fiber.MethodPost, Path: "/logout", Access: Protected, Handler: h.Auth.Logout},

		{Method: fiber.MethodGet, Path: "/", Access: Protected, Handler: h.Organization.Dashboard},
		{Method: fiber.MethodGet, Path: "/dashboard", Access: Protected, Handler: h.Organization.Dashboard},
		{Method: fiber.MethodPost, Path: "/organizations", Access: Protected, Handler: h.Organization.CreateOrganization, Throttled: true},
		{Method: fiber.MethodGet, Path: "/organizations/:orgId", Access: Protected, Handler: h.Organization.GetOrganization},
		{Method: fiber.MethodPost, Path: "/organizations/:orgId/checkout", Access: Protected, Handler: h.Payment.CreateCheckoutSession, Throttled: true},

		{Method: fiber.MethodGet, Path: "/payment-success", Access: Protected, Handler: h.Payment.PaymentSuccess},
		{Method: fiber.MethodGet, Path: "/payment-success/events", Access: Protected, Handler: h.Payment.PaymentEvents},
		{Method: fiber.MethodGet, Path: "/payment-cancel", Access: Protected, Handler: h.Payment.PaymentCancel},
	}
}

type Options struct {
	Sessions  middleware.Sessions
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	// RateLimit is the number of throttled requests a client may send per
	// minute. Zero disables throttling.
	RateLimit int
}

func New(h Handlers, opts Options) (*fiber.App, error) {
	engine := views.New()
	if err := engine.Load(); err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "taskflow",
		Views:                 engine,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(opts.Logger),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(opts.Logger))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse(fiber.Map{"status": "ok"}, ""))
	})
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	var throttle fiber.Handler
	if opts.RateLimit > 0 {
		throttle = limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests. Please wait a moment and try again.")
			},
		})
	}

	requireLogin := middleware.RequireLogin(opts.Sessions)
	guestOnly := middleware.GuestOnly(opts.Sessions)

	for _, r := range Routes(h) {
		var chain []fiber.Handler
		switch r.Access {
		case Protected:
			chain = append(chain, requireLogin)
		case Guest:
			chain = append(chain, guestOnly)
		}
		if r.Throttled && throttle != nil {
			chain = append(chain, throttle)
		}
		chain = append(chain, r.Handler)
		app.Add(r.Method, r.Path, chain...)
	}

	return app, nil
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Something went wrong. Please try again."

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		c.Status(code)
		if renderErr := c.Render("error", fiber.Map{"Status": code, "Message": message}); renderErr != nil {
			return c.SendString(message)
		}
		return nil
	}
}
