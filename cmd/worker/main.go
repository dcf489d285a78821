package main

import (
	"context"
	"log/slog"
	"os"

	"userhub/config"
	"userhub/internal/delivery"
	"userhub/internal/delivery/worker"
	"userhub/internal/delivery/worker/handler"
	"userhub/internal/domain/constants"
	"userhub/internal/infra/cache"
	logs "userhub/internal/infra/log"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Config     *config.Config
	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		cache.NewUserCache,
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	// A memory cache lives inside each API process, so only Redis can be evicted from here
	if params.Config.Cache == nil || params.Config.Cache.Provider != constants.CacheProviderRedis {
		params.Logger.Warn("Worker started without a shared user cache; events are acknowledged only")
	}

	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))
				if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					os.Exit(1)
				}
			}
		}()
	}
}
