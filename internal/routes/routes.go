package routes

import (
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"CATALOG_BACK-END/internal/apperr"
	"CATALOG_BACK-END/internal/config"
	"CATALOG_BACK-END/internal/handlers"
	"CATALOG_BACK-END/internal/logging"
	"CATALOG_BACK-END/internal/middleware"
	"CATALOG_BACK-END/internal/utils"
)

// Handlers groups every HTTP handler the router serves. Google is nil when
// Google sign-in is not configured.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Categories *handlers.CategoryHandler
	Items      *handlers.ItemHandler
	Health     *handlers.HealthHandler
	Google     *handlers.GoogleAuthHandler
}

// SetupRoutes configures all application routes and wraps them in the
// shared middleware chain.
func SetupRoutes(h Handlers, tokens *middleware.TokenManager, cfg *config.Config, log logging.Logger) http.Handler {
	mux := http.NewServeMux()

	required := func(fn http.HandlerFunc) http.Handler { return tokens.AuthMiddleware(fn) }
	optional := func(fn http.HandlerFunc) http.Handler { return tokens.OptionalAuthMiddleware(fn) }

	// Health check routes
	mux.HandleFunc("GET /healthz", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", h.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("POST /register", h.Auth.Register)
	mux.HandleFunc("POST /login", h.Auth.Login)
	if h.Google != nil {
		mux.HandleFunc("GET /auth/google/login", h.Google.GoogleLogin)
		mux.HandleFunc("GET /auth/google/callback", h.Google.GoogleCallback)
	}

	// Category routes
	mux.Handle("GET /categories", optional(h.Categories.ListCategories))
	mux.Handle("POST /categories", required(h.Categories.CreateCategory))
	mux.Handle("GET /categories/{category_id}", optional(h.Categories.GetCategory))
	mux.Handle("DELETE /categories/{category_id}", required(h.Categories.DeleteCategory))

	// Item routes
	mux.Handle("GET /categories/{category_id}/items", optional(h.Items.ListItems))
	mux.Handle("POST /categories/{category_id}/items", required(h.Items.CreateItem))
	mux.Handle("GET /items/{item_id}", optional(h.Items.GetItem))
	mux.Handle("PUT /items/{item_id}", required(h.Items.UpdateItem))
	mux.Handle("DELETE /items/{item_id}", required(h.Items.DeleteItem))

	// API docs
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	mux.HandleFunc("/", notFound)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	var handler http.Handler = mux
	handler = middleware.Recoverer(log)(handler)
	handler = middleware.RequestLogger(log)(handler)
	handler = c.Handler(handler)
	handler = otelhttp.NewHandler(handler, cfg.Telemetry.ServiceName)
	return handler
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteErrorResponse(w, apperr.NotFound("Resource"))
}
