package http

import (
	_ "github.com/ezstore-dev/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/ezstore-dev/go-backend/internal/cfg"
	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/ezstore-dev/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(cartUC usecase.CartUC, prUC usecase.ProductUC, userUC usecase.UserUC, reviewUC usecase.ReviewUC, authCfg *cfg.AuthCfg) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	auth := NewAuthMiddleware(userUC, authCfg, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		cartHandler := NewCartHandler(cartUC, r.logger)
		prHandler := NewProductHandler(prUC, r.logger)
		userHandler := NewUserHandler(userUC, authCfg, r.logger)
		reviewHandler := NewReviewHandler(reviewUC, r.logger)

		registerUserRoutes(v1, userHandler, auth)
		registerProductRoutes(v1, prHandler, reviewHandler, auth)
		registerCartRoutes(v1, cartHandler, auth)
	})
}

func registerUserRoutes(router chi.Router, userHandler *UserHandler, auth *AuthMiddleware) {
	router.Post("/users", userHandler.register)
	router.Post("/sessions", userHandler.login)
	router.Delete("/sessions", userHandler.logout)

	router.Group(func(g chi.Router) {
		g.Use(auth.Authenticate)
		g.Use(RequireRole(domain.RoleAdmin))

		g.Get("/users", userHandler.getAll)
		g.Get("/users/{username}", userHandler.getByUsername)
		g.Delete("/users/{username}", userHandler.deleteUser)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, reviewHandler *ReviewHandler, auth *AuthMiddleware) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.getProducts)
		pr.Get("/{model}", prHandler.getProductByModel)
		pr.Get("/{model}/reviews", reviewHandler.getReviews)

		pr.Group(func(g chi.Router) {
			g.Use(auth.Authenticate)
			g.Use(RequireRole(domain.RoleManager, domain.RoleAdmin))

			g.Post("/", prHandler.registerProduct)
			g.Patch("/{model}/quantity", prHandler.changeQuantity)
			g.Delete("/{model}/reviews", reviewHandler.deleteReviewsOfModel)
			g.Delete("/{model}/reviews/{username}", reviewHandler.deleteReview)
		})

		pr.Group(func(g chi.Router) {
			g.Use(auth.Authenticate)
			g.Use(RequireRole(domain.RoleCustomer))

			g.Post("/{model}/reviews", reviewHandler.addReview)
		})
	})
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler, auth *AuthMiddleware) {
	router.Group(func(g chi.Router) {
		g.Use(auth.Authenticate)
		g.Use(RequireRole(domain.RoleCustomer))

		g.Get("/cart", cartHandler.getCart)
		g.Delete("/cart", cartHandler.clearCart)
		g.Post("/cart/items", cartHandler.addToCart)
		g.Delete("/cart/items/{model}", cartHandler.removeFromCart)
		g.Post("/cart/checkout", cartHandler.checkoutCart)
		g.Get("/carts", cartHandler.getCustomerCarts)
	})

	router.Group(func(g chi.Router) {
		g.Use(auth.Authenticate)
		g.Use(RequireRole(domain.RoleManager, domain.RoleAdmin))

		g.Get("/admin/carts", cartHandler.getAllCarts)
		g.Delete("/admin/carts", cartHandler.deleteAllCarts)
	})
}
