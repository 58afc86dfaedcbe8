package internal

import (
	"localmart/internal/cart"
	control "localmart/internal/control/user"
	"localmart/internal/favourite"
	"localmart/internal/file"
	"localmart/internal/nearby"
	"localmart/internal/notify"
	"localmart/internal/order"
	"localmart/internal/product"
	"localmart/internal/profile"
	"localmart/internal/shop"
	"localmart/internal/ws"

	"go.uber.org/fx"
)

var Module = fx.Options(
	control.Module,
	profile.Module,
	shop.Module,
	product.Module,
	favourite.Module,
	cart.Module,
	order.Module,
	nearby.Module,
	notify.Module,
	file.Module,

	fx.Provide(ws.NewHub),
)
