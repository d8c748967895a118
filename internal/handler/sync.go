package handler

import (
	"net/http"
	"strconv"

	v1 "vsync/api/v1"
	"vsync/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SyncHandler struct {
	*Handler
	syncService service.SyncService
}

func NewSyncHandler(handler *Handler, syncService service.SyncService) *SyncHandler {
	return &SyncHandler{
		Handler:     handler,
		syncService: syncService,
	}
}

// RunSync godoc
// @Summary 手动触发一次对账批次
// @Tags 同步模块
// @Accept json
// @Produce json
// @Success 200 {object} v1.RunSyncResponse
// @Router /api/v1/sync/run [post]
func (h *SyncHandler) RunSync(ctx *gin.Context) {
	data, err := h.syncService.RunBatch(ctx, service.TriggerManual)
	if err != nil {
		if err == v1.ErrSyncInProgress {
			v1.HandleError(ctx, http.StatusConflict, err, nil)
			return
		}
		h.logger.WithContext(ctx).Error("syncService.RunBatch error", zap.Error(err))
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// ListBatches godoc
// @Summary 分页查询批次记录
// @Tags 同步模块
// @Produce json
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Success 200 {object} v1.ListSyncBatchesResponse
// @Router /api/v1/sync/batches [get]
func (h *SyncHandler) ListBatches(ctx *gin.Context) {
	req := new(v1.ListSyncBatchesRequest)
	if err := ctx.ShouldBindQuery(req); err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	data, err := h.syncService.ListBatches(ctx, req)
	if err != nil {
		h.logger.WithContext(ctx).Error("syncService.ListBatches error", zap.Error(err))
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}

// GetBatch godoc
// @Summary 查询单个批次
// @Tags 同步模块
// @Produce json
// @Param id path int true "批次ID"
// @Success 200 {object} v1.GetSyncBatchResponse
// @Router /api/v1/sync/batches/{id} [get]
func (h *SyncHandler) GetBatch(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		v1.HandleError(ctx, http.StatusBadRequest, v1.ErrBadRequest, nil)
		return
	}

	data, err := h.syncService.GetBatch(ctx, id)
	if err != nil {
		if err == v1.ErrBatchNotFound {
			v1.HandleError(ctx, http.StatusNotFound, err, nil)
			return
		}
		h.logger.WithContext(ctx).Error("syncService.GetBatch error", zap.Error(err))
		v1.HandleError(ctx, http.StatusInternalServerError, err, nil)
		return
	}
	v1.HandleSuccess(ctx, data)
}
