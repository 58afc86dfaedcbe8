package handlers

import (
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

	"go.uber.org/fx"
)

var Module = fx.Options(
	middleware.Module,
	control.Module,
	profile.Module,
	shop.Module,
	product.Module,
	favourite.Module,
	cart.Module,
	order.Module,
	nearby.Module,
	file.Module,
	ws.Module,
)
