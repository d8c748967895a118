package reconcile

import (
	"context"
	"testing"

	"vsync/internal/model"
	"vsync/internal/repository"
	"vsync/pkg/log"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func testSettings() Settings {
	return Settings{
		EnforceClusterGroupTopLevel: true,
		UseClusters:                 true,
		VsphereType:                 "VMware vSphere",
		DefaultClusterName:          "vSphere Default",
		Tag:                         "vsync",
	}
}

func newTestLogger() (*log.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return &log.Logger{Logger: zap.New(core)}, logs
}

func newTestStore(t *testing.T) (*Adapter, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	// 内存库按连接隔离，池子必须收敛到单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
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
	))

	for _, name := range []string{"Active", "Offline", "Suspended", "Reserved"} {
		require.NoError(t, db.Create(&model.Status{Name: name}).Error)
	}
	require.NoError(t, db.Create(&model.Site{Name: "Germantown", Slug: "gtn"}).Error)
	require.NoError(t, db.Create(&model.DeviceRole{Name: "Hypervisor Host"}).Error)
	require.NoError(t, db.Create(&model.DeviceType{Model: "PowerEdge R740"}).Error)

	logger := &log.Logger{Logger: zap.NewNop()}
	repo := repository.NewRepository(logger, db)
	adapter := NewAdapter(
		repository.NewSiteRepository(repo),
		repository.NewDeviceRoleRepository(repo),
		repository.NewDeviceTypeRepository(repo),
		repository.NewStatusRepository(repo),
		repository.NewClusterTypeRepository(repo),
		repository.NewClusterGroupRepository(repo),
		repository.NewClusterRepository(repo),
		repository.NewDeviceRepository(repo),
		repository.NewVirtualMachineRepository(repo),
		repository.NewVMInterfaceRepository(repo),
		repository.NewIPAddressRepository(repo),
	)
	return adapter, db
}

// testTree 造一棵带全部六类实体的来源树。
func testTree() *Tree {
	ip := &IPAddress{
		Host:          "10.0.0.5",
		PrefixLength:  24,
		MACAddress:    "00:50:56:aa:bb:01",
		State:         "Active",
		InterfaceName: "eth0",
		VMName:        "web-01",
	}
	iface := &VMInterface{
		Name:           "eth0",
		VirtualMachine: "web-01",
		Enabled:        true,
		MACAddress:     "00:50:56:aa:bb:01",
		IPAddresses:    []*IPAddress{ip},
	}
	vm := &VirtualMachine{
		Name:       "web-01",
		Status:     "Active",
		VCPUs:      4,
		Memory:     8192,
		Disk:       100,
		Cluster:    "C1",
		Interfaces: []*VMInterface{iface},
	}
	host := &Host{
		Name:       "GTNESX01",
		DeviceRole: "Hypervisor Host",
		DeviceType: "PowerEdge R740",
		Site:       "gtn",
		Cluster:    "C1",
	}
	cluster := &Cluster{
		Name:            "C1",
		ClusterType:     "VMware vSphere",
		Group:           "DC1",
		VirtualMachines: []*VirtualMachine{vm},
		Hosts:           []*Host{host},
	}
	group := &ClusterGroup{Name: "DC1", Clusters: []*Cluster{cluster}}
	return &Tree{Roots: []Node{group}}
}

func TestRunCreatesFullInventory(t *testing.T) {
	store, db := newTestStore(t)
	logger, logs := newTestLogger()
	engine := NewEngine(store, testSettings(), logger)

	res, err := engine.Run(context.Background(), testTree())
	require.NoError(t, err)

	assert.Equal(t, 6, res.Created)
	assert.Zero(t, res.Updated)
	assert.Zero(t, res.Deleted)
	assert.Zero(t, res.Warnings)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	var vm model.VirtualMachine
	require.NoError(t, db.Where("name = ?", "web-01").First(&vm).Error)
	assert.Equal(t, 4, vm.VCPUs)
	assert.Equal(t, "vsync", vm.SyncTag)

	var iface model.VMInterface
	require.NoError(t, db.Where("name = ? AND virtual_machine_id = ?", "eth0", vm.Id).First(&iface).Error)

	var ip model.IPAddress
	require.NoError(t, db.Where("host = ?", "10.0.0.5").First(&ip).Error)
	require.NotNil(t, ip.InterfaceID)
	assert.Equal(t, iface.Id, *ip.InterfaceID)

	var device model.Device
	require.NoError(t, db.Where("name = ?", "GTNESX01").First(&device).Error)
	require.NotNil(t, device.ClusterID)
}

func TestRunIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	logger, _ := newTestLogger()
	engine := NewEngine(store, testSettings(), logger)

	_, err := engine.Run(context.Background(), testTree())
	require.NoError(t, err)

	res, err := engine.Run(context.Background(), testTree())
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Updated)
	assert.Zero(t, res.Deleted)
	assert.Zero(t, res.Warnings)
}

func TestRunAppliesPartialUpdates(t *testing.T) {
	store, db := newTestStore(t)
	logger, _ := newTestLogger()
	engine := NewEngine(store, testSettings(), logger)

	_, err := engine.Run(context.Background(), testTree())
	require.NoError(t, err)

	tree := testTree()
	group := tree.Roots[0].(*ClusterGroup)
	vm := group.Clusters[0].VirtualMachines[0]
	vm.Memory = 16384
	vm.Status = "Offline"
	vm.Interfaces[0].Enabled = false

	res, err := engine.Run(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated) // vm 与网卡各一次
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Deleted)

	var rec model.VirtualMachine
	require.NoError(t, db.Where("name = ?", "web-01").First(&rec).Error)
	assert.Equal(t, 16384, rec.Memory)

	var status model.Status
	require.NoError(t, db.Where("name = ?", "Offline").First(&status).Error)
	assert.Equal(t, status.Id, rec.StatusID)

	var iface model.VMInterface
	require.NoError(t, db.Where("virtual_machine_id = ?", rec.Id).First(&iface).Error)
	assert.False(t, iface.Enabled)
}

func TestRunAssignsPrimaryIPTransitively(t *testing.T) {
	store, db := newTestStore(t)
	logger, _ := newTestLogger()
	engine := NewEngine(store, testSettings(), logger)

	withPrimary := func() *Tree {
		tree := testTree()
		group := tree.Roots[0].(*ClusterGroup)
		group.Clusters[0].VirtualMachines[0].PrimaryIP4 = "10.0.0.5"
		return tree
	}

	// 首轮只建实体，不赋主地址
	_, err := engine.Run(context.Background(), withPrimary())
	require.NoError(t, err)
	var rec model.VirtualMachine
	require.NoError(t, db.Where("name = ?", "web-01").First(&rec).Error)
	assert.Nil(t, rec.PrimaryIP4ID)

	// 次轮把主地址差异穿透到 IP 记录
	res, err := engine.Run(context.Background(), withPrimary())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)

	require.NoError(t, db.Where("name = ?", "web-01").First(&rec).Error)
	require.NotNil(t, rec.PrimaryIP4ID)
	var ip model.IPAddress
	require.NoError(t, db.Where("host = ?", "10.0.0.5").First(&ip).Error)
	assert.Equal(t, ip.Id, *rec.PrimaryIP4ID)

	// 第三轮收敛
	res, err = engine.Run(context.Background(), withPrimary())
	require.NoError(t, err)
	assert.Zero(t, res.Updated)
}

func TestRunIsolatesEntityFailures(t *testing.T) {
	store, db := newTestStore(t)
	logger, logs := newTestLogger()
	engine := NewEngine(store, testSettings(), logger)

	tree := testTree()
	group := tree.Roots[0].(*ClusterGroup)
	group.Clusters[0].VirtualMachines = append(group.Clusters[0].VirtualMachines, &VirtualMachine{
		Name:    "broken-01",
		Status:  "Bogus", // 未知状态，预期降级为 warning
		Cluster: "C1",
	})

	res, err := engine.Run(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Warnings)
	assert.Equal(t, 1, logs.FilterMessage("status not found for vm").Len())
	// 被跳过的实体不计入创建数
	assert.Equal(t, 6, res.Created)

	// 其余实体照常入库
	var count int64
	require.NoError(t, db.Model(&model.VirtualMachine{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&model.IPAddress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunRehomesVMAcrossClusters(t *testing.T) {
	store, db := newTestStore(t)
	logger, _ := newTestLogger()
	engine := NewEngine(store, testSettings(), logger)

	twoClusters := func(vmCluster string) *Tree {
		tree := testTree()
		group := tree.Roots[0].(*ClusterGroup)
		c2 := &Cluster{Name: "C2", ClusterType: "VMware vSphere", Group: "DC1"}
		group.Clusters = append(group.Clusters, c2)
		if vmCluster == "C2" {
			vm := group.Clusters[0].VirtualMachines[0]
			vm.Cluster = "C2"
			group.Clusters[0].VirtualMachines = nil
			c2.VirtualMachines = []*VirtualMachine{vm}
		}
		return tree
	}

	_, err := engine.Run(context.Background(), twoClusters("C1"))
	require.NoError(t, err)

	// 换集群只改关联，不得删了重建
	res, err := engine.Run(context.Background(), twoClusters("C2"))
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Zero(t, res.Deleted)
	assert.Zero(t, res.Warnings)

	var c2 model.Cluster
	require.NoError(t, db.Where("name = ?", "C2").First(&c2).Error)
	var vm model.VirtualMachine
	require.NoError(t, db.Where("name = ?", "web-01").First(&vm).Error)
	assert.Equal(t, c2.Id, vm.ClusterID)

	// 第三轮收敛
	res, err = engine.Run(context.Background(), twoClusters("C2"))
	require.NoError(t, err)
	assert.Zero(t, res.Updated)
	assert.Zero(t, res.Deleted)
}

func TestRunDeletesStaleEntities(t *testing.T) {
	store, db := newTestStore(t)
	logger, _ := newTestLogger()
	engine := NewEngine(store, testSettings(), logger)

	_, err := engine.Run(context.Background(), testTree())
	require.NoError(t, err)

	res, err := engine.Run(context.Background(), &Tree{})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Deleted)
	assert.Zero(t, res.Warnings)

	for _, m := range []interface{}{
		&model.IPAddress{}, &model.VMInterface{}, &model.VirtualMachine{},
		&model.Device{}, &model.Cluster{}, &model.ClusterGroup{},
	} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestAttributesFollowClusterSetting(t *testing.T) {
	vm := &VirtualMachine{Name: "web-01", Status: "Active", Cluster: "C1"}
	host := &Host{Name: "GTNESX01", Cluster: "C1"}

	withClusters := testSettings()
	_, ok := vm.Attributes(withClusters)[attrCluster]
	assert.True(t, ok)
	_, ok = host.Attributes(withClusters)[attrCluster]
	assert.True(t, ok)

	withClusters.UseClusters = false
	_, ok = vm.Attributes(withClusters)[attrCluster]
	assert.False(t, ok)
	_, ok = host.Attributes(withClusters)[attrCluster]
	assert.False(t, ok)
}

func TestRunWithoutClusters(t *testing.T) {
	store, db := newTestStore(t)
	logger, _ := newTestLogger()
	settings := testSettings()
	settings.UseClusters = false
	engine := NewEngine(store, settings, logger)

	tree := &Tree{Roots: []Node{
		&VirtualMachine{Name: "web-01", Status: "Active", VCPUs: 2, Memory: 4096, Disk: 40},
		&Host{Name: "GTNESX01", DeviceRole: "Hypervisor Host", DeviceType: "PowerEdge R740", Site: "gtn"},
	}}

	res, err := engine.Run(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Zero(t, res.Warnings)

	// 虚机挂到默认集群下
	var cluster model.Cluster
	require.NoError(t, db.Where("name = ?", settings.DefaultClusterName).First(&cluster).Error)
	var vm model.VirtualMachine
	require.NoError(t, db.Where("name = ?", "web-01").First(&vm).Error)
	assert.Equal(t, cluster.Id, vm.ClusterID)

	// 宿主机不关联集群
	var device model.Device
	require.NoError(t, db.Where("name = ?", "GTNESX01").First(&device).Error)
	assert.Nil(t, device.ClusterID)

	// 集群名差异在该模式下不参与比对
	res, err = engine.Run(context.Background(), tree)
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Updated)
	assert.Zero(t, res.Deleted)
}
