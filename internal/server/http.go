package server

import (
	apiV1 "vsync/api/v1"
	"vsync/internal/middleware"
	"vsync/internal/router"
	"vsync/pkg/server/http"

	"github.com/gin-gonic/gin"
)

func NewHTTPServer(
	deps router.RouterDeps,
) *http.Server {
	if deps.Config.GetString("env") == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := http.NewServer(
		gin.Default(),
		deps.Logger,
		http.WithServerHost(deps.Config.GetString("http.host")),
		http.WithServerPort(deps.Config.GetInt("http.port")),
	)

	s.Use(
		middleware.CORSMiddleware(),
		middleware.ResponseLogMiddleware(deps.Logger),
		middleware.RequestLogMiddleware(deps.Logger),
	)
	s.GET("/", func(ctx *gin.Context) {
		apiV1.HandleSuccess(ctx, map[string]interface{}{
			":)": "Thank you for using vSync!",
		})
	})

	v1 := s.Group("/api/v1")
	router.InitSyncRouter(deps, v1)

	return s
}
