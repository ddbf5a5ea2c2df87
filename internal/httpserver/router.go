package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmarkhas/shop_backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	ProfileHandler *ProfileHTTP
	Auth           *auth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authGroup := e.Group("/auth")
	authGroup.POST("/signup", d.AuthHandler.Signup)
	authGroup.POST("/login", d.AuthHandler.Login)

	products := e.Group("/products")
	products.GET("/listing", d.ProductHandler.ListProducts)
	products.GET("/seller", d.ProductHandler.SellerProducts, d.Auth.RequireAuth, d.Auth.RequireSeller)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, d.Auth.RequireAuth, d.Auth.RequireSeller)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, d.Auth.RequireAuth, d.Auth.RequireSeller)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, d.Auth.RequireAuth, d.Auth.RequireSeller)

	cart := e.Group("/cart", d.Auth.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.POST("/increase", d.CartHandler.IncreaseItem)
	cart.POST("/decrease", d.CartHandler.DecreaseItem)
	cart.POST("/remove", d.CartHandler.RemoveItem)
	cart.POST("/clear", d.CartHandler.ClearCart)

	profile := e.Group("/profile", d.Auth.RequireAuth)
	profile.GET("", d.ProfileHandler.GetProfile)
	profile.PUT("", d.ProfileHandler.UpdateProfile)
	profile.PUT("/pic", d.ProfileHandler.UpdateProfilePic)
}
