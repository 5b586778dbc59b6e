package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/handlers"
	"github.com/tribalarts/storefront-service/internal/middleware"
)

type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	httpSrv  *http.Server
}

func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.Auth(cfg.Auth))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/auth/signup", s.handlers.Signup)
		v1.POST("/auth/signin", s.handlers.Signin)
		v1.GET("/users/:email", s.handlers.GetProfile)
		v1.PUT("/users/:email", s.handlers.UpdateProfile)

		v1.GET("/products", s.handlers.ListProducts)
		v1.GET("/products/:id", s.handlers.GetProduct)

		v1.GET("/cart", s.handlers.GetCart)
		v1.PUT("/cart", s.handlers.PutCart)
		v1.DELETE("/cart", s.handlers.ClearCart)
		v1.GET("/wishlist", s.handlers.GetWishlist)
		v1.PUT("/wishlist", s.handlers.PutWishlist)
		v1.DELETE("/wishlist", s.handlers.ClearWishlist)

		v1.POST("/checkout/begin", s.handlers.BeginCheckout)
		v1.POST("/checkout/complete", s.handlers.CompleteCheckout)

		v1.GET("/orders", s.handlers.ListOrders)
		v1.GET("/orders/:id", s.handlers.GetOrder)
		v1.POST("/orders", s.handlers.CreateOrder)

		v1.POST("/contact", s.handlers.SubmitContactMessage)
		v1.GET("/messages", s.handlers.GetMyMessages)

		admin := v1.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/dashboard", s.handlers.AdminDashboard)
			admin.GET("/customers", s.handlers.AdminListCustomers)
			admin.GET("/orders", s.handlers.AdminListOrders)
			admin.GET("/orders/:id", s.handlers.AdminGetOrder)
			admin.PATCH("/orders/:id", s.handlers.AdminUpdateOrderStatus)
			admin.POST("/products", s.handlers.AdminCreateProduct)
			admin.PUT("/products/:id", s.handlers.AdminUpdateProduct)
			admin.DELETE("/products/:id", s.handlers.AdminDeleteProduct)
			admin.GET("/messages", s.handlers.AdminListMessages)
			admin.PATCH("/messages/:id", s.handlers.AdminUpdateMessage)
		}
	}
}

func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
