package repository

import (
	"context"
	"testing"

	"vsync/internal/model"
	"vsync/pkg/log"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.Status{},
		&model.DeviceRole{},
		&model.DeviceType{},
		&model.Site{},
		&model.ClusterType{},
		&model.ClusterGroup{},
		&model.Cluster{},
		&model.Device{},
		&model.VirtualMachine{},
		&model.VMInterface{},
		&model.IPAddress{},
		&model.SyncBatch{},
	))
	return NewRepository(&log.Logger{Logger: zap.NewNop()}, db)
}

func TestClusterGetOrCreateIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	types := NewClusterTypeRepository(repo)
	ct, created, err := types.GetOrCreate(ctx, "VMware vSphere")
	require.NoError(t, err)
	assert.True(t, created)

	clusters := NewClusterRepository(repo)
	first, created, err := clusters.GetOrCreate(ctx, "C1", ct.Id)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := clusters.GetOrCreate(ctx, "C1", ct.Id)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Id, second.Id)
}

func TestClusterGroupGetOrCreateSlugsName(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	groups := NewClusterGroupRepository(repo)
	group, created, err := groups.GetOrCreate(ctx, "East Coast DC")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "east-coast-dc", group.Slug)
}

func TestDeviceUpdateOrCreateMatchesCaseInsensitive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	statusRepo := NewStatusRepository(repo)
	require.NoError(t, statusRepo.Create(ctx, &model.Status{Name: "Active"}))
	status, err := statusRepo.GetByName(ctx, "Active")
	require.NoError(t, err)

	roleRepo := NewDeviceRoleRepository(repo)
	roleA := &model.DeviceRole{Name: "Hypervisor Host"}
	roleB := &model.DeviceRole{Name: "Storage Host"}
	require.NoError(t, roleRepo.Create(ctx, roleA))
	require.NoError(t, roleRepo.Create(ctx, roleB))

	typeRepo := NewDeviceTypeRepository(repo)
	typeA := &model.DeviceType{Model: "PowerEdge R740"}
	typeB := &model.DeviceType{Model: "PowerEdge R750"}
	require.NoError(t, typeRepo.Create(ctx, typeA))
	require.NoError(t, typeRepo.Create(ctx, typeB))

	siteRepo := NewSiteRepository(repo)
	site := &model.Site{Name: "Germantown", Slug: "gtn"}
	require.NoError(t, siteRepo.Create(ctx, site))

	devices := NewDeviceRepository(repo)
	first, created, err := devices.UpdateOrCreate(ctx, &model.Device{
		Name:     "GTNESX01",
		StatusID: status.Id,
		RoleID:   roleA.Id,
		TypeID:   typeA.Id,
		SiteID:   site.Id,
	})
	require.NoError(t, err)
	assert.True(t, created)

	// 大小写不同的同名记录走更新路径并覆盖属性
	second, created, err := devices.UpdateOrCreate(ctx, &model.Device{
		Name:     "gtnesx01",
		StatusID: status.Id,
		RoleID:   roleB.Id,
		TypeID:   typeB.Id,
		SiteID:   site.Id,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, roleB.Id, second.RoleID)
	assert.Equal(t, typeB.Id, second.TypeID)
}

func TestIPAddressLookupReturnsNilWhenAbsent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ips := NewIPAddressRepository(repo)
	ip, err := ips.GetByHostPrefix(ctx, "10.9.9.9", 24)
	require.NoError(t, err)
	assert.Nil(t, ip)
}

func TestVMInterfaceMACScopedLookup(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	statusRepo := NewStatusRepository(repo)
	require.NoError(t, statusRepo.Create(ctx, &model.Status{Name: "Active"}))
	status, err := statusRepo.GetByName(ctx, "Active")
	require.NoError(t, err)

	ct, _, err := NewClusterTypeRepository(repo).GetOrCreate(ctx, "VMware vSphere")
	require.NoError(t, err)
	cluster, _, err := NewClusterRepository(repo).GetOrCreate(ctx, "C1", ct.Id)
	require.NoError(t, err)

	vms := NewVirtualMachineRepository(repo)
	vm, _, err := vms.GetOrCreate(ctx, &model.VirtualMachine{Name: "web-01", StatusID: status.Id, ClusterID: cluster.Id})
	require.NoError(t, err)

	ifaces := NewVMInterfaceRepository(repo)
	_, _, err = ifaces.GetOrCreate(ctx, &model.VMInterface{
		Name:             "eth0",
		VirtualMachineID: vm.Id,
		MACAddress:       "00:50:56:aa:bb:01",
	})
	require.NoError(t, err)

	found, err := ifaces.GetByNameVMAndMAC(ctx, "eth0", vm.Id, "00:50:56:aa:bb:01")
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := ifaces.GetByNameVMAndMAC(ctx, "eth0", vm.Id, "00:50:56:ff:ff:ff")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClusterDeleteBlockedByVirtualMachine(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	statusRepo := NewStatusRepository(repo)
	require.NoError(t, statusRepo.Create(ctx, &model.Status{Name: "Active"}))
	status, err := statusRepo.GetByName(ctx, "Active")
	require.NoError(t, err)

	ct, _, err := NewClusterTypeRepository(repo).GetOrCreate(ctx, "VMware vSphere")
	require.NoError(t, err)
	clusters := NewClusterRepository(repo)
	cluster, _, err := clusters.GetOrCreate(ctx, "C1", ct.Id)
	require.NoError(t, err)

	vms := NewVirtualMachineRepository(repo)
	vm, _, err := vms.GetOrCreate(ctx, &model.VirtualMachine{Name: "web-01", StatusID: status.Id, ClusterID: cluster.Id})
	require.NoError(t, err)

	// 仍有虚机挂靠时外键约束必须拦下集群删除
	assert.Error(t, clusters.Delete(ctx, cluster.Id))

	require.NoError(t, vms.Delete(ctx, vm.Id))
	assert.NoError(t, clusters.Delete(ctx, cluster.Id))
}

func TestSyncBatchPagination(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	batches := NewSyncBatchRepository(repo)
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, batches.Create(ctx, &model.SyncBatch{
			Id:      i,
			Trigger: "manual",
			Status:  "completed",
		}))
	}

	list, total, err := batches.ListWithPagination(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)
}
