//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"kinstore/internal"
	"kinstore/internal/backup"
	"kinstore/internal/controllers"
	"kinstore/internal/providers"
	"kinstore/internal/services"
	"kinstore/internal/storage"
	"kinstore/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewTracingProvider,
		providers.NewSessionProvider,
		storage.NewStoreProvider,

		services.NewOfferService,
		services.NewMediaService,
		services.NewProductService,
		services.NewPasswordHasher,
		services.NewAuthService,
		services.NewChatService,

		backup.NewCompressorProvider,
		backup.NewSnapshotManager,
		backup.NewScheduler,

		controllers.NewOfferController,
		controllers.NewProductController,
		controllers.NewUploadController,
		controllers.NewChatController,
		controllers.NewAuthController,
		controllers.NewAdminAuthController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}
