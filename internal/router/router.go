package router

import (
	"github.com/gin-gonic/gin"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/handler"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/metrics"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/service"
)

// Setup builds the file server engine: the root alias plus a catch-all for
// every other path.
func Setup(files *service.FileService, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())

	fh := handler.NewFileHandler(files, m)

	r.GET("/", fh.Index)
	r.HEAD("/", fh.Index)
	r.NoRoute(fh.File)

	return r
}

// SetupAdmin builds the admin engine. It runs on its own listener so no path
// on the file server is shadowed.
func SetupAdmin(m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	mh := handler.NewMetricsHandler(m)

	r.GET("/healthz", mh.Health)
	r.GET("/metrics", mh.GetMetrics)

	return r
}
