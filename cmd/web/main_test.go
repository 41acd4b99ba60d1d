package main

import (
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/config"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/metrics"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/router"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func newRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>Hi</h1>"), 0o644); err != nil {
		t.Fatalf("failed to write index: %v", err)
	}
	return root
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, string(b)
}

func TestServe_ListensOnPortFromEnv(t *testing.T) {
	port := freePort(t)
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("ADMIN_PORT", "")
	t.Chdir(newRoot(t))

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ln, err := listen(cfg.Addr())
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	if got := ln.Addr().(*net.TCPAddr).Port; got != port {
		t.Errorf("expected port %d, got %d", port, got)
	}

	files, err := service.NewFileService(cfg.Root)
	if err != nil {
		t.Fatalf("failed to create file service: %v", err)
	}
	defer files.Close()

	done := make(chan error, 1)
	go func() { done <- serve(ln, router.Setup(files, metrics.NewMetrics())) }()

	status, body := get(t, "http://"+ln.Addr().String()+"/")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	if body != "<h1>Hi</h1>" {
		t.Errorf("expected index body, got %q", body)
	}

	ln.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error after close, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after listener close")
	}
}

func TestListen_BusyPort(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer busy.Close()

	if _, err := listen(busy.Addr().String()); err == nil {
		t.Error("expected error for busy port")
	}
}

func TestRun_BusyPortFails(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer busy.Close()

	cfg := &config.Config{
		Host: "127.0.0.1",
		Port: busy.Addr().(*net.TCPAddr).Port,
		Mode: gin.TestMode,
		Root: newRoot(t),
	}

	done := make(chan error, 1)
	go func() { done <- run(cfg) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected error for busy port")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not fail on busy port")
	}
}

func TestRun_MissingRootFails(t *testing.T) {
	cfg := &config.Config{
		Host: "127.0.0.1",
		Port: freePort(t),
		Mode: gin.TestMode,
		Root: filepath.Join(t.TempDir(), "missing"),
	}

	if err := run(cfg); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestRun_AdminPortBusyFails(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer busy.Close()

	cfg := &config.Config{
		Host:      "127.0.0.1",
		Port:      freePort(t),
		AdminPort: busy.Addr().(*net.TCPAddr).Port,
		Mode:      gin.TestMode,
		Root:      newRoot(t),
	}

	done := make(chan error, 1)
	go func() { done <- run(cfg) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected error for busy admin port")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not fail on busy admin port")
	}
}
