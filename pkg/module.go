package pkg

import (
	"go.uber.org/fx"

	"localmart/pkg/cache"
	"localmart/pkg/config"
	"localmart/pkg/db"
	"localmart/pkg/filemanager"
	"localmart/pkg/logger"
	"localmart/pkg/migration"
	"localmart/pkg/redis"
	"localmart/pkg/reply"
	"localmart/pkg/repository"
)

var Module = fx.Options(
	config.Module,
	logger.Module,
	migration.Module,
	repository.Module,
	db.Module,
	cache.Module,
	reply.Module,
	filemanager.Module,
	redis.Module,
)
