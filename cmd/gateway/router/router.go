package router

import (
	"context"
	"net/http"

	"localmart/apps/gateway/handlers/cart"
	control "localmart/apps/gateway/handlers/control/user"
	"localmart/apps/gateway/handlers/favourite"
	"localmart/apps/gateway/handlers/file"
	"localmart/apps/gateway/handlers/middleware"
	"localmart/apps/gateway/handlers/nearby"
	"localmart/apps/gateway/handlers/order"
	"localmart/apps/gateway/handlers/product"
	"localmart/apps/gateway/handlers/profile"
	"localmart/apps/gateway/handlers/shop"
	"localmart/apps/gateway/handlers/ws"
	"localmart/pkg/config"
	"localmart/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Invoke(
		NewRouter,
	),
)

type Params struct {
	fx.In

	middleware.Middleware
	Lifecycle fx.Lifecycle
	Config    config.IConfig
	Logger    logger.Logger

	User      control.Handler
	Profile   profile.Handler
	Shop      shop.Handler
	Product   product.Handler
	Favourite favourite.Handler
	Cart      cart.Handler
	Order     order.Handler
	Nearby    nearby.Handler
	File      file.Handler
	WS        ws.Handler
}

func NewRouter(params Params) {
	r := gin.New()
	baseUrl := "/api/v1"

	out := r.Group(baseUrl)
	out.Use(params.Ctx(), gin.Logger(), gin.Recovery())

	api := r.Group(baseUrl)
	api.Use(params.Ctx(), gin.Logger(), gin.Recovery())
	api.Use(params.CheckAuth())

	authGroup := out.Group("/auth")
	{
		authGroup.POST("/signup", params.User.SignUp)
		authGroup.POST("/login", params.User.Login)
	}
	api.GET("/auth/me", params.User.GetMe)

	profileGroup := api.Group("/profile")
	{
		profileGroup.GET("/", params.Profile.GetMyProfile)
		profileGroup.PATCH("/", params.Profile.PatchMyProfile)
	}

	shopGroup := api.Group("/shop")
	{
		// Public list carries best-effort identity so favourite marks
		// show up for logged-in browsers.
		out.GET("/shop", params.Middleware.OptionalAuth(), params.Shop.GetListShop)
		out.GET("/shop/:id", params.Shop.GetByIDShop)
		shopGroup.POST("/", params.Middleware.VendorOnly(), params.Shop.CreateShop)
		shopGroup.PATCH("/:id", params.Middleware.VendorOnly(), params.Shop.PatchShop)
		shopGroup.DELETE("/:id", params.Middleware.VendorOnly(), params.Shop.DeleteShop)
	}

	vendorGroup := api.Group("/vendor")
	vendorGroup.Use(params.Middleware.VendorOnly())
	{
		vendorGroup.GET("/shop", params.Shop.GetMyShop)
		vendorGroup.GET("/orders", params.Order.GetShopOrders)
	}

	productGroup := api.Group("/product")
	{
		out.GET("/product", params.Product.GetListProduct)
		out.GET("/product/:id", params.Product.GetByIDProduct)
		productGroup.POST("/", params.Middleware.VendorOnly(), params.Product.CreateProduct)
		productGroup.PATCH("/:id", params.Middleware.VendorOnly(), params.Product.PatchProduct)
		productGroup.DELETE("/:id", params.Middleware.VendorOnly(), params.Product.DeleteProduct)
	}

	favouriteGroup := api.Group("/favourite")
	{
		favouriteGroup.POST("/toggle", params.Favourite.ToggleFavourite)
		favouriteGroup.GET("/", params.Favourite.GetListFavourite)
	}

	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("/", params.Cart.GetCart)
		cartGroup.POST("/items", params.Cart.AddItem)
		cartGroup.PATCH("/items", params.Cart.PatchItem)
		cartGroup.DELETE("/items/:id", params.Cart.RemoveItem)
		cartGroup.DELETE("/", params.Cart.ClearCart)
	}

	orderGroup := api.Group("/order")
	{
		orderGroup.POST("/", params.Order.Checkout)
		orderGroup.GET("/", params.Order.GetMyOrders)
		orderGroup.GET("/:id", params.Order.GetByIDOrder)
		orderGroup.GET("/:id/qr", params.Order.PickupQR)
		orderGroup.PATCH("/:id/status", params.Order.PatchOrderStatus)
	}

	api.POST("/nearby", params.Nearby.SearchNearby)

	fileGroup := api.Group("/file")
	{
		fileGroup.POST("/", params.Middleware.VendorOnly(), params.File.UploadImage)
		fileGroup.DELETE("/:name", params.Middleware.VendorOnly(), params.File.DeleteImage)
	}

	wsGroup := out.Group("/ws")
	{
		wsGroup.GET("/orders", params.WS.OrdersWS)
		wsGroup.GET("/shop/orders", params.WS.ShopOrdersWS)
	}

	server := http.Server{
		Addr: params.Config.GetString("server.port"),
		Handler: cors.New(cors.Options{
			AllowedHeaders:   []string{"*"},
			AllowedOrigins:   []string{"http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
			AllowCredentials: true,
			AllowOriginVaryRequestFunc: func(r *http.Request, origin string) (bool, []string) {
				return true, []string{"*"}
			},
		}).Handler(r),
	}

	params.Lifecycle.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				params.Logger.Info(ctx, "Starting application")
				go func() {
					if err := server.ListenAndServe(); err != nil {
						params.Logger.Error(ctx, "Err on ListenAndServe", zap.Error(err))
					}
				}()

				params.Logger.Info(ctx, "Application starting on port", zap.String("port", params.Config.GetString("server.port")))
				return nil
			},
			OnStop: func(ctx context.Context) error {
				params.Logger.Error(ctx, "Application stopped")
				return server.Shutdown(ctx)
			},
		},
	)
}
