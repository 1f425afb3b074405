package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jerseyforge/jerseyforge-backend/api/controllers"
	"github.com/jerseyforge/jerseyforge-backend/api/middleware"
	adminsvc "github.com/jerseyforge/jerseyforge-backend/internal/admin"
	authsvc "github.com/jerseyforge/jerseyforge-backend/internal/auth"
	cartsvc "github.com/jerseyforge/jerseyforge-backend/internal/cart"
	catalogsvc "github.com/jerseyforge/jerseyforge-backend/internal/catalog"
	usersvc "github.com/jerseyforge/jerseyforge-backend/internal/users"
	wishlistsvc "github.com/jerseyforge/jerseyforge-backend/internal/wishlist"
	"github.com/jerseyforge/jerseyforge-backend/pkg/config"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db"
	"github.com/jerseyforge/jerseyforge-backend/pkg/logger"
	"github.com/jerseyforge/jerseyforge-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth     authsvc.Service
	Users    usersvc.Service
	Catalog  catalogsvc.Service
	Cart     cartsvc.Service
	Wishlist wishlistsvc.Service
	Admin    adminsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	resolver middleware.UserResolver,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.Register(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.Login(svcs.Auth, logg))

		r.Get("/categories", controllers.ListCategories(svcs.Catalog, logg))
		r.Get("/products", controllers.ListProducts(svcs.Catalog, logg))
		r.Get("/products/{slug}", controllers.GetProductBySlug(svcs.Catalog, logg))
		r.Get("/products/{slug}/related", controllers.ListRelatedProducts(svcs.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, resolver, logg))

			r.Get("/user", controllers.CurrentUser(svcs.Users, logg))
			r.Put("/user", controllers.UpdateProfile(svcs.Users, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartList(svcs.Cart, logg))
				r.Post("/", controllers.CartAdd(svcs.Cart, logg))
				r.Delete("/", controllers.CartClear(svcs.Cart, logg))
				r.Patch("/{id}", controllers.CartUpdateQuantity(svcs.Cart, logg))
				r.Delete("/{id}", controllers.CartRemove(svcs.Cart, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistList(svcs.Wishlist, logg))
				r.Post("/", controllers.WishlistAdd(svcs.Wishlist, logg))
				r.Delete("/{productId}", controllers.WishlistRemove(svcs.Wishlist, logg))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
				Post("/login", controllers.AdminLogin(svcs.Auth, logg))
			// bootstrap route: the service decides whether a requester
			// identity is required, so auth here is optional
			r.With(middleware.OptionalAuth(cfg.JWT, logg)).
				Post("/create", controllers.AdminCreate(svcs.Admin, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, resolver, logg))
				r.Get("/check", controllers.AdminCheck(svcs.Admin, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin(svcs.Admin, logg))

					r.Get("/stats", controllers.AdminStats(svcs.Admin, logg))
					r.Get("/users", controllers.AdminUsers(svcs.Admin, logg))
					r.Get("/users/{username}", controllers.AdminUserByUsername(svcs.Admin, logg))
					r.Post("/promote", controllers.AdminPromote(svcs.Admin, logg))
					r.Delete("/revoke/{userId}", controllers.AdminRevoke(svcs.Admin, logg))

					r.Route("/categories", func(r chi.Router) {
						r.Post("/", controllers.CreateCategory(svcs.Catalog, logg))
						r.Put("/{id}", controllers.UpdateCategory(svcs.Catalog, logg))
						r.Delete("/{id}", controllers.DeleteCategory(svcs.Catalog, logg))
					})
					r.Route("/products", func(r chi.Router) {
						r.Post("/", controllers.CreateProduct(svcs.Catalog, logg))
						r.Put("/{id}", controllers.UpdateProduct(svcs.Catalog, logg))
						r.Delete("/{id}", controllers.DeleteProduct(svcs.Catalog, logg))
					})
				})
			})
		})
	})

	return r
}
