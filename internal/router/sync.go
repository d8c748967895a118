package router

import (
	"github.com/gin-gonic/gin"
)

func InitSyncRouter(
	deps RouterDeps,
	r *gin.RouterGroup,
) {
	syncRouter := r.Group("/sync")
	{
		syncRouter.POST("/run", deps.SyncHandler.RunSync)
		syncRouter.GET("/batches", deps.SyncHandler.ListBatches)
		syncRouter.GET("/batches/:id", deps.SyncHandler.GetBatch)
	}
}
