package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"campaignkit-go/internal/bootstrap"
	"campaignkit-go/internal/config"
	"campaignkit-go/internal/handler"
	"campaignkit-go/pkg/logger"
)

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "", "Configuration file path (env: CAMPAIGNKIT_*)")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug mode")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	cfg, err := config.NewManager().Load(app.configPath)
	if err != nil {
		return err
	}
	if app.debug {
		cfg.Logger.Level = "debug"
	}
	logger.SetLogger(logger.New(cfg.Logger))
	log := logger.GetLogger().Component("server")

	kit, err := bootstrap.NewBuilder().
		WithConfig(cfg).
		WithRegisterer(prometheus.DefaultRegisterer).
		WithLogger(logger.GetLogger()).
		Build()
	if err != nil {
		return fmt.Errorf("assemble campaign kit: %w", err)
	}
	defer kit.Close()

	svc := kit.Service
	server := handler.NewApp(handler.AppConfig{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
		Logger:       logger.GetLogger(),
	}, handler.NewController(svc, svc, svc, svc))

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- server.Listen(addr)
	}()

	log.WithFields(map[string]interface{}{
		"addr":   addr,
		"config": app.configPath,
		"debug":  app.debug,
	}).Info("Server started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(ctx); err != nil {
		log.WithError(err).Warn("Server did not shut down cleanly")
	}
	log.Info("Server stopped")
	return nil
}
