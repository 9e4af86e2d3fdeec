package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/vimy/tower-core/agent"
	"github.com/nstehr/vimy/tower-core/api"
	"github.com/nstehr/vimy/tower-core/config"
	"github.com/nstehr/vimy/tower-core/rules"
)

const banner = `
████████╗ ██████╗ ██╗    ██╗███████╗██████╗
╚══██╔══╝██╔═══██╗██║    ██║██╔════╝██╔══██╗
   ██║   ██║   ██║██║ █╗ ██║█████╗  ██████╔╝
   ██║   ██║   ██║██║███╗██║██╔══╝  ██╔══██╗
   ██║   ╚██████╔╝╚███╔███╔╝███████╗██║  ██║
   ╚═╝    ╚═════╝  ╚══╝╚══╝ ╚══════╝╚═╝  ╚═╝

Kingdom Wars Tower Intelligence`

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(cfg.Logger())

	fmt.Println(banner)

	doctrine, err := loadDoctrine(cfg.Doctrine)
	if err != nil {
		slog.Error("failed to load doctrine", "path", cfg.Doctrine, "error", err)
		os.Exit(1)
	}
	engine, err := rules.NewEngine(rules.CompileDoctrine(doctrine))
	if err != nil {
		slog.Error("failed to compile rules", "error", err)
		os.Exit(1)
	}
	slog.Info("doctrine loaded", "name", doctrine.Name, "rules", engine.Rules())

	identity := api.Identity{Name: cfg.Name, Strategy: cfg.Strategy, Version: cfg.Version}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewServer(identity, agent.New(cfg.Name, engine), cfg.RateLimit, cfg.Burst),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go reloadOnHangup(ctx, cfg.Doctrine, engine)

	go func() {
		slog.Info("listening", "addr", srv.Addr, "bot", cfg.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func loadDoctrine(path string) (rules.Doctrine, error) {
	if path == "" {
		return rules.DefaultDoctrine(), nil
	}
	return rules.LoadDoctrine(path)
}

// reloadOnHangup swaps in a freshly compiled doctrine on SIGHUP. A bad file
// leaves the running rules untouched.
func reloadOnHangup(ctx context.Context, path string, engine *rules.Engine) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if path == "" {
				slog.Warn("SIGHUP ignored, no doctrine file configured")
				continue
			}
			doctrine, err := rules.LoadDoctrine(path)
			if err != nil {
				slog.Error("doctrine reload failed", "path", path, "error", err)
				continue
			}
			if err := engine.Swap(rules.CompileDoctrine(doctrine)); err != nil {
				slog.Error("doctrine swap failed", "error", err)
				continue
			}
			slog.Info("doctrine reloaded", "name", doctrine.Name)
		}
	}
}
