package router

import (
	"vsync/internal/handler"
	"vsync/pkg/log"

	"github.com/spf13/viper"
)

type RouterDeps struct {
	Logger      *log.Logger
	Config      *viper.Viper
	SyncHandler *handler.SyncHandler
}
