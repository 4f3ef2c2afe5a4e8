package routes

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/configs"
	"github.com/Rakhulsr/go-motoshop/app/handlers"
	"github.com/Rakhulsr/go-motoshop/app/handlers/admin"
	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/middlewares"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/services"
	"github.com/Rakhulsr/go-motoshop/app/utils/renderer"
	"github.com/Rakhulsr/go-motoshop/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV, keys *configs.SessionKeys) http.Handler {
	rnd := renderer.New(!env.IsProduction())
	validate := helpers.NewValidator()
	sessionStore := sessions.NewCookieSessionStore(env.CookieSecure, keys.AuthKey, keys.EncKey)

	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	newsRepo := repositories.NewNewsRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	userRepo := repositories.NewUserRepository(db)

	var notifier services.OrderNotifier
	if env.MailerEnabled() {
		notifier = services.NewMailer(services.MailerConfig{
			Host:     env.EmailHost,
			Port:     env.EmailPort,
			Username: env.EmailUsername,
			Password: env.EmailPassword,
			From:     env.EmailFrom,
		})
		log.Println("✅ Order confirmation mailer enabled.")
	}

	categorySvc := services.NewCategoryService(db, categoryRepo, validate, env.CategoryDeletePolicy)
	catalogSvc := services.NewCatalogService(productRepo, serviceRepo, newsRepo, categoryRepo, categorySvc, validate)
	cartSvc := services.NewCartService(db, cartRepo, cartItemRepo, productRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, cartItemRepo, orderRepo, orderItemRepo, validate, notifier)
	orderSvc := services.NewOrderService(orderRepo)
	authSvc := services.NewAuthService(userRepo, validate)

	homeHandler := handlers.NewHomeHandler(rnd, db, categorySvc, catalogSvc)
	cartHandler := handlers.NewCartHandler(rnd, cartSvc, env.CookieSecure)
	checkoutHandler := handlers.NewCheckoutHandler(rnd, cartSvc, checkoutSvc, env.CookieSecure)
	orderHandler := handlers.NewOrderHandler(rnd, orderSvc)
	categoryHandler := handlers.NewCategoryHandler(rnd, categorySvc)
	productHandler := handlers.NewProductHandler(rnd, catalogSvc)
	contentHandler := handlers.NewContentHandler(rnd, catalogSvc)
	authHandler := handlers.NewAuthHandler(rnd, authSvc, cartSvc, sessionStore, env.CookieSecure)
	adminHandler := admin.NewAdminHandler(rnd, userRepo, categorySvc, catalogSvc, orderSvc)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(homeHandler.NotFound)
	router.Use(middlewares.RequestLoggerMiddleware)
	router.Use(middlewares.AuthSessionMiddleware(sessionStore))

	router.HandleFunc("/healthz", homeHandler.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/home", homeHandler.Home).Methods("GET")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart", cartHandler.AddItem).Methods("POST")
	api.HandleFunc("/cart", cartHandler.UpdateItem).Methods("PUT")
	api.HandleFunc("/cart", cartHandler.DeleteItem).Methods("DELETE")
	api.HandleFunc("/cart/count", cartHandler.GetCartCount).Methods("GET")

	api.HandleFunc("/checkout", checkoutHandler.Submit).Methods("POST")
	api.HandleFunc("/orders", orderHandler.ListMine).Methods("GET")

	api.HandleFunc("/categories", categoryHandler.List).Methods("GET")
	api.HandleFunc("/categories/{type}/{slug}", categoryHandler.GetBySlug).Methods("GET")
	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products/{slug}", productHandler.GetBySlug).Methods("GET")
	api.HandleFunc("/services", contentHandler.ListServices).Methods("GET")
	api.HandleFunc("/services/{slug}", contentHandler.GetService).Methods("GET")
	api.HandleFunc("/news", contentHandler.ListNews).Methods("GET")
	api.HandleFunc("/news/{slug}", contentHandler.GetNews).Methods("GET")

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware(userRepo, rnd))
	adminRouter.Use(csrf.Protect(
		keys.CSRFKey(),
		csrf.Secure(env.CookieSecure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("CSRF rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
			_ = rnd.JSON(w, http.StatusForbidden, helpers.ErrorResponse{
				Error:   "forbidden",
				Message: "Phiên làm việc đã hết hạn, vui lòng tải lại trang.",
			})
		})),
	))

	adminRouter.HandleFunc("/dashboard", adminHandler.Dashboard).Methods("GET")
	adminRouter.HandleFunc("/csrf", adminHandler.CSRFToken).Methods("GET")

	adminRouter.HandleFunc("/categories", adminHandler.ListCategories).Methods("GET")
	adminRouter.HandleFunc("/categories", adminHandler.CreateCategory).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}", adminHandler.UpdateCategory).Methods("PUT")
	adminRouter.HandleFunc("/categories/{id}", adminHandler.DeleteCategory).Methods("DELETE")

	adminRouter.HandleFunc("/products", adminHandler.ListProducts).Methods("GET")
	adminRouter.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	adminRouter.HandleFunc("/products/{id}", adminHandler.UpdateProduct).Methods("PUT")
	adminRouter.HandleFunc("/products/{id}", adminHandler.DeleteProduct).Methods("DELETE")

	adminRouter.HandleFunc("/services", adminHandler.ListServices).Methods("GET")
	adminRouter.HandleFunc("/services", adminHandler.CreateService).Methods("POST")
	adminRouter.HandleFunc("/services/{id}", adminHandler.UpdateService).Methods("PUT")
	adminRouter.HandleFunc("/services/{id}", adminHandler.DeleteService).Methods("DELETE")

	adminRouter.HandleFunc("/news", adminHandler.ListNews).Methods("GET")
	adminRouter.HandleFunc("/news", adminHandler.CreateNews).Methods("POST")
	adminRouter.HandleFunc("/news/{id}", adminHandler.UpdateNews).Methods("PUT")
	adminRouter.HandleFunc("/news/{id}", adminHandler.DeleteNews).Methods("DELETE")

	adminRouter.HandleFunc("/orders", adminHandler.ListOrders).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}", adminHandler.GetOrder).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}/status", adminHandler.UpdateOrderStatus).Methods("PUT")

	return middlewares.MethodOverrideMiddleware(router)
}
