package server

import (
	"context"
	"os"

	"vsync/internal/service"
	"vsync/pkg/log"

	"go.uber.org/zap"
)

// SyncServer 以一次性进程的方式跑一个批次，跑完即退出，
// 供运维手工或外部调度器调用。
type SyncServer struct {
	log         *log.Logger
	syncService service.SyncService
}

func NewSyncServer(
	log *log.Logger,
	syncService service.SyncService,
) *SyncServer {
	return &SyncServer{
		log:         log,
		syncService: syncService,
	}
}

func (s *SyncServer) Start(ctx context.Context) error {
	data, err := s.syncService.RunBatch(ctx, service.TriggerCLI)
	if err != nil {
		s.log.Error("sync batch error", zap.Error(err))
		os.Exit(1)
	}
	s.log.Info("sync batch done",
		zap.Int64("batch_id", data.Id),
		zap.String("status", data.Status),
		zap.Int("created", data.Created),
		zap.Int("updated", data.Updated),
		zap.Int("deleted", data.Deleted),
		zap.Int("warnings", data.Warnings))

	os.Exit(0)
	return nil
}

func (s *SyncServer) Stop(ctx context.Context) error {
	return nil
}
