package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/metrics"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/service"
)

const (
	indexFile      = "index.html"
	allowedMethods = "GET, HEAD, OPTIONS"
)

// FileHandler serves files from the working directory root
type FileHandler struct {
	files   *service.FileService
	metrics *metrics.Metrics
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *service.FileService, metrics *metrics.Metrics) *FileHandler {
	return &FileHandler{
		files:   files,
		metrics: metrics,
	}
}

// Index handles GET and HEAD /
func (h *FileHandler) Index(c *gin.Context) {
	h.serve(c, indexFile)
}

// File handles every path without a dedicated route, including non-GET
// methods on /.
func (h *FileHandler) File(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead:
		h.serve(c, c.Request.URL.Path)
	case http.MethodOptions:
		h.Options(c)
	default:
		h.metrics.Record(metrics.MethodNotAllowed)
		c.Header("Allow", allowedMethods)
		c.String(http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Options answers OPTIONS with the allowed methods and an empty body
func (h *FileHandler) Options(c *gin.Context) {
	c.Header("Allow", allowedMethods)
	c.Header("Content-Length", "0")
	c.Status(http.StatusOK)
}

func (h *FileHandler) serve(c *gin.Context, name string) {
	f, err := h.files.Open(c.Request.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileNotFound):
			h.metrics.Record(metrics.NotFound)
			c.String(http.StatusNotFound, "404 page not found")
		case errors.Is(err, service.ErrForbidden):
			h.metrics.Record(metrics.Forbidden)
			log.Printf("rejected path outside root: %q", name)
			c.String(http.StatusForbidden, "403 forbidden")
		default:
			h.metrics.Record(metrics.Failed)
			log.Printf("error serving %q: %v", name, err)
			c.String(http.StatusInternalServerError, "500 internal server error")
		}
		return
	}
	defer f.Close()

	http.ServeContent(c.Writer, c.Request, f.Info.Name(), f.Info.ModTime(), f)
	h.metrics.Record(metrics.Served)
}
