package main

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/config"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/metrics"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/router"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/service"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// run binds every listener before serving, so a bad root or a busy port
// fails at startup. It blocks while the file server runs.
func run(cfg *config.Config) error {
	gin.SetMode(cfg.Mode)

	files, err := service.NewFileService(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to initialize file service: %w", err)
	}
	defer files.Close()

	metricsInstance := metrics.NewMetrics()

	ln, err := listen(cfg.Addr())
	if err != nil {
		return err
	}
	defer ln.Close()

	if addr := cfg.AdminAddr(); addr != "" {
		adminLn, err := listen(addr)
		if err != nil {
			return err
		}
		go func() {
			log.Printf("Admin server listening on %s", adminLn.Addr())
			if err := serve(adminLn, router.SetupAdmin(metricsInstance)); err != nil {
				log.Fatalf("admin server error: %v", err)
			}
		}()
	}

	log.Printf("Serving %s on %s", files.Root(), ln.Addr())
	return serve(ln, router.Setup(files, metricsInstance))
}

func listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// serve runs an HTTP server on ln until the listener is closed
func serve(ln net.Listener, h http.Handler) error {
	server := &http.Server{Handler: h}
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
