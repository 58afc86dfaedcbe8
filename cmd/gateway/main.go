package main

import (
	"localmart/apps/gateway"
	"localmart/cmd/gateway/router"
	"localmart/internal"
	"localmart/pkg"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		gateway.Module,
		router.Module,
		pkg.Module,
		internal.Module,
	).Run()
}
