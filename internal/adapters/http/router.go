package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/planmytrip/backend/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	authRequired := AuthMiddleware(deps.Auth)

	v1 := app.Group("/v1")

	// Accounts and sessions
	v1.Post("/auth/register", timeout.NewWithContext(RegisterHandler(deps), 15*time.Second))
	v1.Post("/auth/login", timeout.NewWithContext(LoginHandler(deps), 15*time.Second))
	v1.Post("/auth/logout", LogoutHandler())
	v1.Get("/auth/me", authRequired, timeout.NewWithContext(MeHandler(deps), 15*time.Second))

	// Trip planning. Creation geocodes every place name upstream, so it
	// gets a longer budget than reads.
	v1.Post("/trips", authRequired, timeout.NewWithContext(CreateTripHandler(deps), 30*time.Second))
	v1.Get("/trips", authRequired, timeout.NewWithContext(ListTripsHandler(deps), 15*time.Second))
	v1.Post("/trips/:id/route", authRequired, timeout.NewWithContext(SaveRouteHandler(deps), 15*time.Second))
	v1.Get("/trips/:id/route", authRequired, timeout.NewWithContext(FullRouteHandler(deps), 15*time.Second))
	v1.Get("/trips/:id/geometry", authRequired, timeout.NewWithContext(GeometryHandler(deps), 30*time.Second))

	// Place discovery
	v1.Get("/places/nearby", timeout.NewWithContext(NearbyPlacesHandler(deps), 30*time.Second))

	// Route drafts
	v1.Post("/drafts", authRequired, timeout.NewWithContext(CreateDraftHandler(deps), 15*time.Second))
	v1.Get("/drafts/:id", authRequired, timeout.NewWithContext(GetDraftHandler(deps), 15*time.Second))
	v1.Post("/drafts/:id/places", authRequired, timeout.NewWithContext(AddDraftPlaceHandler(deps), 15*time.Second))
	v1.Delete("/drafts/:id/places/:idx", authRequired, timeout.NewWithContext(RemoveDraftPlaceHandler(deps), 15*time.Second))
	v1.Delete("/drafts/:id", authRequired, timeout.NewWithContext(DeleteDraftHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", authRequired, GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
