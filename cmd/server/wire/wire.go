//go:build wireinject
// +build wireinject

package wire

import (
	"vsync/internal/handler"
	"vsync/internal/reconcile"
	"vsync/internal/repository"
	"vsync/internal/router"
	"vsync/internal/server"
	"vsync/internal/service"
	"vsync/pkg/app"
	"vsync/pkg/log"
	"vsync/pkg/server/http"
	"vsync/pkg/sid"

	"github.com/google/wire"
	"github.com/spf13/viper"
)

var repositorySet = wire.NewSet(
	repository.NewDB,
	repository.NewRepository,
	repository.NewTransaction,
	repository.NewSiteRepository,
	repository.NewDeviceRoleRepository,
	repository.NewDeviceTypeRepository,
	repository.NewStatusRepository,
	repository.NewClusterTypeRepository,
	repository.NewClusterGroupRepository,
	repository.NewClusterRepository,
	repository.NewDeviceRepository,
	repository.NewVirtualMachineRepository,
	repository.NewVMInterfaceRepository,
	repository.NewIPAddressRepository,
	repository.NewSyncBatchRepository,
)

var reconcileSet = wire.NewSet(
	reconcile.NewAdapter,
)

var serviceSet = wire.NewSet(
	service.NewService,
	service.NewSyncService,
)

var handlerSet = wire.NewSet(
	handler.NewHandler,
	handler.NewSyncHandler,
)

var serverSet = wire.NewSet(
	server.NewHTTPServer,
	server.NewJobServer,
)

// build App
func newApp(
	httpServer *http.Server,
	jobServer *server.JobServer,
) *app.App {
	return app.NewApp(
		app.WithServer(httpServer, jobServer),
		app.WithName("vsync-server"),
	)
}

func NewWire(*viper.Viper, *log.Logger) (*app.App, func(), error) {
	panic(wire.Build(
		repositorySet,
		reconcileSet,
		serviceSet,
		handlerSet,
		serverSet,
		wire.Struct(new(router.RouterDeps), "*"),
		sid.NewSid,
		newApp,
	))
}
