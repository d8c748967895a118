//go:build wireinject
// +build wireinject

package wire

import (
	"vsync/internal/reconcile"
	"vsync/internal/repository"
	"vsync/internal/server"
	"vsync/internal/service"
	"vsync/pkg/app"
	"vsync/pkg/log"
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

var serviceSet = wire.NewSet(
	service.NewService,
	service.NewSyncService,
)

var serverSet = wire.NewSet(
	server.NewSyncServer,
)

// build App
func newApp(
	syncServer *server.SyncServer,
) *app.App {
	return app.NewApp(
		app.WithServer(syncServer),
		app.WithName("vsync-cli"),
	)
}

func NewWire(*viper.Viper, *log.Logger) (*app.App, func(), error) {
	panic(wire.Build(
		repositorySet,
		reconcile.NewAdapter,
		serviceSet,
		serverSet,
		sid.NewSid,
		newApp,
	))
}
