package postgres

import (
	favouriteRepo "localmart/pkg/repository/postgres/favourite_repo"
	orderRepo "localmart/pkg/repository/postgres/order_repo"
	productRepo "localmart/pkg/repository/postgres/product_repo"
	profileRepo "localmart/pkg/repository/postgres/profile_repo"
	shopRepo "localmart/pkg/repository/postgres/shop_repo"
	usersRepo "localmart/pkg/repository/postgres/users_repo"

	"go.uber.org/fx"
)

var Module = fx.Options(
	usersRepo.Module,
	profileRepo.Module,
	shopRepo.Module,
	productRepo.Module,
	favouriteRepo.Module,
	orderRepo.Module,
)
