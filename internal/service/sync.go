package service

import (
	"context"
	"sync/atomic"
	"time"

	v1 "vsync/api/v1"
	"vsync/internal/model"
	"vsync/internal/reconcile"
	"vsync/internal/repository"
	"vsync/internal/source"
	"vsync/pkg/hash"
	"vsync/pkg/log"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
	TriggerCLI      = "cli"

	BatchStatusCompleted = "completed"
	BatchStatusSkipped   = "skipped"
	BatchStatusFailed    = "failed"
)

type SyncService interface {
	RunBatch(ctx context.Context, trigger string) (*v1.SyncBatchData, error)
	GetBatch(ctx context.Context, id int64) (*v1.SyncBatchData, error)
	ListBatches(ctx context.Context, req *v1.ListSyncBatchesRequest) (*v1.ListSyncBatchesResponseData, error)
}

func NewSyncService(
	service *Service,
	conf *viper.Viper,
	store *reconcile.Adapter,
	batchRepo repository.SyncBatchRepository,
	logger *log.Logger,
) SyncService {
	return &syncService{
		Service:   service,
		conf:      conf,
		store:     store,
		batchRepo: batchRepo,
		logger:    logger,
	}
}

type syncService struct {
	*Service
	conf      *viper.Viper
	store     *reconcile.Adapter
	batchRepo repository.SyncBatchRepository
	logger    *log.Logger
	running   atomic.Bool
}

// RunBatch 执行一次对账批次。同一进程内同一时刻只允许一个批次运行。
// 定时触发时若快照内容与上个完成批次一致，记一条 skipped 批次直接返回。
func (s *syncService) RunBatch(ctx context.Context, trigger string) (*v1.SyncBatchData, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, v1.ErrSyncInProgress
	}
	defer s.running.Store(false)

	startTime := time.Now()

	snap, err := source.Load(s.conf.GetString("sync.snapshot_path"))
	if err != nil {
		s.logger.WithContext(ctx).Error("load snapshot error", zap.Error(err))
		return nil, v1.ErrSnapshotUnavailable
	}
	snapshotHash, err := hash.Content(snap)
	if err != nil {
		s.logger.WithContext(ctx).Error("hash snapshot error", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}

	if trigger == TriggerSchedule {
		latest, err := s.batchRepo.GetLatestCompleted(ctx)
		if err != nil {
			s.logger.WithContext(ctx).Error("query latest batch error", zap.Error(err))
			return nil, v1.ErrInternalServerError
		}
		if latest != nil && latest.SnapshotHash == snapshotHash {
			s.logger.WithContext(ctx).Info("snapshot unchanged, skipping batch",
				zap.String("snapshot_hash", snapshotHash))
			return s.record(ctx, trigger, BatchStatusSkipped, snapshotHash, nil, startTime)
		}
	}

	settings := reconcile.NewSettings(s.conf)
	tree := source.NewBuilder(settings).Build(snap)
	engine := reconcile.NewEngine(s.store, settings, s.logger)

	result, err := engine.Run(ctx, tree)
	if err != nil {
		s.logger.WithContext(ctx).Error("reconcile batch failed", zap.Error(err))
		if _, recErr := s.record(ctx, trigger, BatchStatusFailed, snapshotHash, nil, startTime); recErr != nil {
			s.logger.WithContext(ctx).Error("record failed batch error", zap.Error(recErr))
		}
		return nil, v1.ErrInternalServerError
	}

	s.logger.WithContext(ctx).Info("reconcile batch finished",
		zap.String("trigger", trigger),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
		zap.Int("warnings", result.Warnings))
	return s.record(ctx, trigger, BatchStatusCompleted, snapshotHash, result, startTime)
}

func (s *syncService) record(ctx context.Context, trigger, status, snapshotHash string, result *reconcile.Result, startTime time.Time) (*v1.SyncBatchData, error) {
	id, err := s.sid.GenInt64()
	if err != nil {
		s.logger.WithContext(ctx).Error("generate batch id error", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	batch := &model.SyncBatch{
		Id:           id,
		Trigger:      trigger,
		Status:       status,
		SnapshotHash: snapshotHash,
		StartTime:    startTime,
		EndTime:      time.Now(),
	}
	if result != nil {
		batch.Created = result.Created
		batch.Updated = result.Updated
		batch.Deleted = result.Deleted
		batch.Warnings = result.Warnings
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		s.logger.WithContext(ctx).Error("record batch error", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	return toBatchData(batch), nil
}

func (s *syncService) GetBatch(ctx context.Context, id int64) (*v1.SyncBatchData, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("query batch error", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	if batch == nil {
		return nil, v1.ErrBatchNotFound
	}
	return toBatchData(batch), nil
}

func (s *syncService) ListBatches(ctx context.Context, req *v1.ListSyncBatchesRequest) (*v1.ListSyncBatchesResponseData, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	batches, total, err := s.batchRepo.ListWithPagination(ctx, page, pageSize)
	if err != nil {
		s.logger.WithContext(ctx).Error("list batches error", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	data := &v1.ListSyncBatchesResponseData{
		List:  make([]v1.SyncBatchData, 0, len(batches)),
		Total: total,
	}
	for _, b := range batches {
		data.List = append(data.List, *toBatchData(b))
	}
	return data, nil
}

func toBatchData(batch *model.SyncBatch) *v1.SyncBatchData {
	return &v1.SyncBatchData{
		Id:           batch.Id,
		Trigger:      batch.Trigger,
		Status:       batch.Status,
		SnapshotHash: batch.SnapshotHash,
		Created:      batch.Created,
		Updated:      batch.Updated,
		Deleted:      batch.Deleted,
		Warnings:     batch.Warnings,
		StartTime:    batch.StartTime,
		EndTime:      batch.EndTime,
	}
}
