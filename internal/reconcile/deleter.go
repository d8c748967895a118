package reconcile

import (
	"context"

	"vsync/pkg/log"

	"go.uber.org/zap"
)

type deleteFunc func(ctx context.Context) error

type deletion struct {
	key string
	fn  deleteFunc
}

// Deleter 按实体类型分桶暂存删除操作，批次遍历结束后统一刷出。
// 生命周期与批次一致：每个批次新建，Flush 后清空。
type Deleter struct {
	buckets map[Kind][]deletion
	logger  *log.Logger
}

func NewDeleter(logger *log.Logger) *Deleter {
	return &Deleter{
		buckets: make(map[Kind][]deletion),
		logger:  logger,
	}
}

// Register 登记一个待删除对象。实际删除推迟到 Flush。
func (d *Deleter) Register(kind Kind, key string, fn deleteFunc) {
	d.buckets[kind] = append(d.buckets[kind], deletion{key: key, fn: fn})
}

// Flush 按依赖序刷出所有桶，单项失败只记日志，不中断其余删除。
// 返回成功删除数与失败数。
func (d *Deleter) Flush(ctx context.Context) (deleted, failed int) {
	for _, kind := range deleteOrder {
		for _, del := range d.buckets[kind] {
			if err := del.fn(ctx); err != nil {
				failed++
				d.logger.WithContext(ctx).Warn("ordered delete failed, skipping item",
					zap.String("kind", kind.String()),
					zap.String("key", del.key),
					zap.Error(err))
				continue
			}
			deleted++
			d.logger.WithContext(ctx).Info("deleted",
				zap.String("kind", kind.String()),
				zap.String("key", del.key))
		}
	}
	d.buckets = make(map[Kind][]deletion)
	return deleted, failed
}

// Pending 返回某个桶当前登记的数量。
func (d *Deleter) Pending(kind Kind) int {
	return len(d.buckets[kind])
}
