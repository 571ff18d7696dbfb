// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/viber-store/internal/config"
	"github.com/your-org/viber-store/internal/domain/cart"
	"github.com/your-org/viber-store/internal/domain/product"
	"github.com/your-org/viber-store/internal/domain/session"
	"github.com/your-org/viber-store/internal/interfaces/http/handlers"
	"github.com/your-org/viber-store/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the router
// group. Storage handles are passed in from main; nothing here reaches
// for globals.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productRepo := product.NewRepository(db)
	cartRepo := cart.NewRepository(db)

	productService := product.NewService(productRepo)
	cartService := cart.NewService(cartRepo, productRepo)

	sessionStore := session.NewRedisStore(redisClient)
	bridge := session.NewBridge(cfg, sessionStore, cartService)

	authHandler := handlers.NewAuthHandler(bridge, cfg)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)

	// Public auth endpoints
	auth := rg.Group("/auth")
	{
		auth.GET("/login", authHandler.ShowLogin)
		auth.POST("/login", authHandler.Login)
		auth.GET("/logout", authHandler.Logout)
		auth.GET("/logout/clear-cart", authHandler.LogoutClearCart)
	}

	// Public catalog endpoints
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Cart endpoints require a session
	cartRoutes := rg.Group("/cart")
	cartRoutes.Use(middleware.RequireLogin(cfg, bridge))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.GET("/count", cartHandler.GetCartCount)
		cartRoutes.POST("/add/:productID", cartHandler.AddToCart)
		cartRoutes.POST("/update/:itemID", cartHandler.UpdateLine)
		cartRoutes.POST("/remove/:itemID", cartHandler.RemoveLine)
	}
}
