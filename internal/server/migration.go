package server

import (
	"context"
	"os"

	"vsync/internal/model"
	"vsync/internal/repository"
	"vsync/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateServer struct {
	db         *gorm.DB
	log        *log.Logger
	statusRepo repository.StatusRepository
	roleRepo   repository.DeviceRoleRepository
}

func NewMigrateServer(
	db *gorm.DB,
	log *log.Logger,
	statusRepo repository.StatusRepository,
	roleRepo repository.DeviceRoleRepository,
) *MigrateServer {
	return &MigrateServer{
		db:         db,
		log:        log,
		statusRepo: statusRepo,
		roleRepo:   roleRepo,
	}
}

func (m *MigrateServer) Start(ctx context.Context) error {
	if err := m.db.AutoMigrate(
		&model.Status{},
		&model.Site{},
		&model.DeviceRole{},
		&model.DeviceType{},
		&model.ClusterType{},
		&model.ClusterGroup{},
		&model.Cluster{},
		&model.Device{},
		&model.VirtualMachine{},
		&model.VMInterface{},
		&model.IPAddress{},
		&model.SyncBatch{},
	); err != nil {
		m.log.Error("migrate error", zap.Error(err))
		return err
	}
	m.log.Info("AutoMigrate success")

	if err := m.seed(ctx); err != nil {
		m.log.Error("seed reference data error", zap.Error(err))
		return err
	}

	os.Exit(0)
	return nil
}

// seed 预置状态与宿主机角色。站点与设备型号属于运维配置数据，
// 批次运行时缺失只会产生 warning，不在迁移里造。
func (m *MigrateServer) seed(ctx context.Context) error {
	for _, name := range []string{"Active", "Offline", "Suspended", "Reserved"} {
		existing, err := m.statusRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := m.statusRepo.Create(ctx, &model.Status{Name: name}); err != nil {
			return err
		}
		m.log.Info("status seeded", zap.String("name", name))
	}

	roleName := "Hypervisor Host"
	existing, err := m.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := m.roleRepo.Create(ctx, &model.DeviceRole{Name: roleName}); err != nil {
			return err
		}
		m.log.Info("device role seeded", zap.String("name", roleName))
	}
	return nil
}

func (m *MigrateServer) Stop(ctx context.Context) error {
	m.log.Info("AutoMigrate stop")
	return nil
}
