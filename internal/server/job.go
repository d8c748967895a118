package server

import (
	"context"
	"time"

	"vsync/internal/service"
	"vsync/pkg/log"

	"github.com/go-co-op/gocron"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// JobServer 周期性触发对账批次。批次互斥由 SyncService 保证，
// 这里只负责节拍。
type JobServer struct {
	log         *log.Logger
	conf        *viper.Viper
	syncService service.SyncService
	scheduler   *gocron.Scheduler
}

func NewJobServer(
	log *log.Logger,
	conf *viper.Viper,
	syncService service.SyncService,
) *JobServer {
	return &JobServer{
		log:         log,
		conf:        conf,
		syncService: syncService,
	}
}

func (j *JobServer) Start(ctx context.Context) error {
	gocron.SetPanicHandler(func(jobName string, recoverData interface{}) {
		j.log.Error("job panic", zap.String("job", jobName), zap.Any("recover", recoverData))
	})

	interval := j.conf.GetInt("sync.interval_minutes")
	if interval <= 0 {
		interval = 30
	}

	j.scheduler = gocron.NewScheduler(time.UTC)
	_, err := j.scheduler.Every(interval).Minutes().Do(func() {
		if _, err := j.syncService.RunBatch(ctx, service.TriggerSchedule); err != nil {
			j.log.Error("scheduled batch error", zap.Error(err))
		}
	})
	if err != nil {
		j.log.Error("schedule sync job error", zap.Error(err))
		return err
	}

	j.log.Info("sync job scheduled", zap.Int("interval_minutes", interval))
	j.scheduler.StartBlocking()
	return nil
}

func (j *JobServer) Stop(ctx context.Context) error {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
	j.log.Info("sync job stopped")
	return nil
}
