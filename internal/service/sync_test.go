package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	v1 "vsync/api/v1"
	"vsync/internal/model"
	"vsync/internal/reconcile"
	"vsync/internal/repository"
	"vsync/internal/source"
	"vsync/pkg/log"
	"vsync/pkg/sid"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func writeSnapshot(t *testing.T, path string, snap *source.Snapshot) {
	t.Helper()
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func testServiceSnapshot() *source.Snapshot {
	return &source.Snapshot{
		Datacenters: []source.Datacenter{{
			Name: "DC1",
			Clusters: []source.Cluster{{
				Name: "C1",
				VirtualMachines: []source.VirtualMachine{{
					Name:       "web-01",
					PowerState: "POWERED_ON",
					VCPUs:      2,
					MemoryMB:   4096,
					DiskGB:     40,
				}},
			}},
		}},
	}
}

func newTestSyncService(t *testing.T, snapshotPath string) (SyncService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
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
		&model.SyncBatch{},
	))
	for _, name := range []string{"Active", "Offline", "Suspended", "Reserved"} {
		require.NoError(t, db.Create(&model.Status{Name: name}).Error)
	}

	logger := &log.Logger{Logger: zap.NewNop()}
	repo := repository.NewRepository(logger, db)
	adapter := reconcile.NewAdapter(
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

	conf := viper.New()
	conf.Set("sync.snapshot_path", snapshotPath)

	svc := NewService(repository.NewTransaction(repo), logger, sid.NewSid())
	return NewSyncService(svc, conf, adapter, repository.NewSyncBatchRepository(repo), logger), db
}

func TestRunBatchCompletes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	writeSnapshot(t, path, testServiceSnapshot())

	svc, db := newTestSyncService(t, path)
	data, err := svc.RunBatch(context.Background(), TriggerManual)
	require.NoError(t, err)

	assert.Equal(t, BatchStatusCompleted, data.Status)
	assert.Equal(t, TriggerManual, data.Trigger)
	assert.Equal(t, 3, data.Created) // group + cluster + vm
	assert.NotEmpty(t, data.SnapshotHash)

	var count int64
	require.NoError(t, db.Model(&model.SyncBatch{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunBatchSkipsUnchangedSnapshotOnSchedule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	writeSnapshot(t, path, testServiceSnapshot())

	svc, _ := newTestSyncService(t, path)
	first, err := svc.RunBatch(context.Background(), TriggerSchedule)
	require.NoError(t, err)
	assert.Equal(t, BatchStatusCompleted, first.Status)

	second, err := svc.RunBatch(context.Background(), TriggerSchedule)
	require.NoError(t, err)
	assert.Equal(t, BatchStatusSkipped, second.Status)
	assert.Equal(t, first.SnapshotHash, second.SnapshotHash)

	// 手动触发不短路
	third, err := svc.RunBatch(context.Background(), TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, BatchStatusCompleted, third.Status)
}

func TestRunBatchSnapshotMissing(t *testing.T) {
	svc, _ := newTestSyncService(t, "/nonexistent/snapshot.json")
	_, err := svc.RunBatch(context.Background(), TriggerManual)
	assert.ErrorIs(t, err, v1.ErrSnapshotUnavailable)
}

func TestListAndGetBatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	writeSnapshot(t, path, testServiceSnapshot())

	svc, _ := newTestSyncService(t, path)
	data, err := svc.RunBatch(context.Background(), TriggerManual)
	require.NoError(t, err)

	list, err := svc.ListBatches(context.Background(), &v1.ListSyncBatchesRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.List, 1)

	got, err := svc.GetBatch(context.Background(), data.Id)
	require.NoError(t, err)
	assert.Equal(t, data.Id, got.Id)

	_, err = svc.GetBatch(context.Background(), 42)
	assert.ErrorIs(t, err, v1.ErrBatchNotFound)
}
