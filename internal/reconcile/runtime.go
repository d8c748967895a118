package reconcile

import (
	"context"
	"time"

	"vsync/internal/model"
	"vsync/internal/repository"
	"vsync/pkg/log"

	"go.uber.org/zap"
)

// Adapter 聚合目标库各实体的仓储，是引擎与存储之间唯一的通道。
type Adapter struct {
	Sites        repository.SiteRepository
	Roles        repository.DeviceRoleRepository
	DeviceTypes  repository.DeviceTypeRepository
	Statuses     repository.StatusRepository
	ClusterTypes repository.ClusterTypeRepository
	Groups       repository.ClusterGroupRepository
	Clusters     repository.ClusterRepository
	Devices      repository.DeviceRepository
	VMs          repository.VirtualMachineRepository
	Interfaces   repository.VMInterfaceRepository
	IPs          repository.IPAddressRepository
}

func NewAdapter(
	sites repository.SiteRepository,
	roles repository.DeviceRoleRepository,
	deviceTypes repository.DeviceTypeRepository,
	statuses repository.StatusRepository,
	clusterTypes repository.ClusterTypeRepository,
	groups repository.ClusterGroupRepository,
	clusters repository.ClusterRepository,
	devices repository.DeviceRepository,
	vms repository.VirtualMachineRepository,
	interfaces repository.VMInterfaceRepository,
	ips repository.IPAddressRepository,
) *Adapter {
	return &Adapter{
		Sites:        sites,
		Roles:        roles,
		DeviceTypes:  deviceTypes,
		Statuses:     statuses,
		ClusterTypes: clusterTypes,
		Groups:       groups,
		Clusters:     clusters,
		Devices:      devices,
		VMs:          vms,
		Interfaces:   interfaces,
		IPs:          ips,
	}
}

// Tag 给受管记录打同步标记并刷新同步时间，调用方随后负责落库。
func (a *Adapter) Tag(tag string, rec model.Synced) {
	rec.SyncStamp(tag, time.Now())
}

// Runtime 是一次批次的过程状态：适配器、配置、删除桶与告警计数。
// 批次内所有实体级错误都在这里降级为 warning，绝不向上冒泡中断批次。
type Runtime struct {
	store    *Adapter
	settings Settings
	deleter  *Deleter
	logger   *log.Logger
	warnings int
}

func newRuntime(store *Adapter, settings Settings, logger *log.Logger) *Runtime {
	return &Runtime{
		store:    store,
		settings: settings,
		deleter:  NewDeleter(logger),
		logger:   logger,
	}
}

func (rt *Runtime) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	rt.warnings++
	rt.logger.WithContext(ctx).Warn(msg, fields...)
}

func (rt *Runtime) Warnings() int {
	return rt.warnings
}
