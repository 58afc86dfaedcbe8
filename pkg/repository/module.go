package repository

import (
	"go.uber.org/fx"

	"localmart/pkg/repository/postgres"
)

var Module = fx.Options(
	postgres.Module,
)
