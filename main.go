package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	rotatelogs "github.com/iproj/file-rotatelogs"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"docspot/internal"
	"docspot/internal/messages"
	"docspot/internal/seed"
	"docspot/internal/storage"
	"docspot/internal/store"
	"docspot/web"
	"docspot/workers"
)

func main() {
	runtime.GOMAXPROCS(4)

	log.SetFormatter(&log.TextFormatter{})

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.LogDir != "" {
		if err := setupLogFile(cfg.LogDir); err != nil {
			log.Error(err)
		}
	}
	if cfg.Key == "" {
		log.Fatal("KEY must be set to sign session tokens")
	}

	ctx := context.Background()

	backend, err := storage.Open(ctx, cfg, log.StandardLogger())
	if err != nil {
		log.Fatal(err)
	}
	backend, err = storage.Instrument(backend, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("using %s storage", cfg.StoreDriver)

	st := store.New(backend, log.StandardLogger())

	if cfg.SeedDemo {
		seeded, err := seed.GenerateSampleData(ctx, st, time.Now())
		if err != nil {
			log.Fatal(err)
		}
		if seeded {
			log.Info("demo data written")
		}
	}

	notifications := make(chan messages.Message, 64)
	done := workers.CreateNotificationWorker(notifications, st)

	r := web.NewRouter(st, web.Options{
		Secret:        cfg.Key,
		Debug:         cfg.Debug,
		Latency:       cfg.Latency,
		AuthRate:      cfg.AuthRate,
		AuthBurst:     cfg.AuthBurst,
		Gatherer:      prometheus.DefaultGatherer,
		Notifications: notifications,
	})

	handleSignals(func() {
		r.Close()
		close(notifications)
		<-done
		if err := backend.Close(); err != nil {
			log.Error(err)
		}
	})

	// fully load and apply routes
	r.Init()
	if err := r.Listen(cfg.Listen); err != nil {
		log.Error(err)
	}
}

func setupLogFile(dir string) error {
	writer, err := rotatelogs.New(
		filepath.Join(dir, "docspot.%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, "docspot.log")),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("log rotation: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, writer))
	return nil
}

func handleSignals(cleanup func()) {
	// Signal Termination if using CLI
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		shutdown(cleanup)
	}()
}

func shutdown(cleanup func()) {
	fmt.Println()
	log.Warnf("%d threads at exit.", runtime.NumGoroutine())
	log.Warn("Shutting down docspot...")
	cleanup()
	os.Exit(1)
}
