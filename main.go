package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron"

	"AirQualityEurope/src/config"
	"AirQualityEurope/src/datapush"
	"AirQualityEurope/src/datasource/email"
	"AirQualityEurope/src/datasource/file"
	"AirQualityEurope/src/processor"
	"AirQualityEurope/src/server"
	"AirQualityEurope/src/storage"
)

func main() {
	cfg, err := config.LoadConfig("./config", "config.json")
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer logger.Close()

	loader := file.NewLoader(cfg.SheetName)
	dataPath := cfg.DataPath()

	// Invalidate the memoized load whenever the spreadsheet is rewritten in
	// the data directory, then push the fresh summary if a webhook is set.
	monitor, err := file.NewFileMonitor(cfg.DataDir)
	if err != nil {
		log.Fatal("failed to watch data dir: ", err)
	}
	defer monitor.Close()

	go func() {
		err := monitor.Watch(func(path string) {
			if filepath.Base(path) != cfg.DataFile {
				return
			}
			loader.Invalidate(dataPath)
			logger.Info("data file updated, cache invalidated: " + path)
			pushSummary(cfg, loader, dataPath, logger)
		})
		if err != nil {
			logger.Error("file monitoring stopped: " + err.Error())
		}
	}()

	c := cron.New()

	if cfg.Email.Enabled {
		emailClient := email.NewEmailClient(
			cfg.Email.Server,
			cfg.Email.Username,
			cfg.Email.Password)
		handler := email.NewXLSXAttachmentHandler(cfg.Email.TargetSubject, cfg.DataDir)

		checkSpec := fmt.Sprintf("@every %s", time.Duration(cfg.Email.CheckInterval))
		err = c.AddFunc(checkSpec, func() {
			newEmail, err := email.CheckAndProcessEmails(emailClient, cfg.Email.TargetSubject, logger)
			if err != nil {
				logger.Error("mailbox check failed: " + err.Error())
				return
			}
			if newEmail == nil {
				return
			}
			if err := handler.Handle(newEmail, logger); err != nil {
				logger.Error(fmt.Sprintf("handling mail (UID %d) failed: %v", newEmail.UID, err))
			}
		})
		if err != nil {
			log.Fatal("failed to schedule mailbox check: ", err)
		}
		logger.Info(fmt.Sprintf("mailbox ingestion enabled (every %s)", time.Duration(cfg.Email.CheckInterval)))
	}

	rotateSpec := fmt.Sprintf("@every %s", time.Duration(cfg.RefreshInterval))
	if err := c.AddFunc(rotateSpec, func() {
		if err := logger.CheckRotate(cfg.LogMaxSize); err != nil {
			logger.Error("log rotation failed: " + err.Error())
		}
	}); err != nil {
		log.Fatal("failed to schedule log rotation: ", err)
	}

	c.Start()
	defer c.Stop()

	srv := server.NewServer(cfg.HTTPAddr, dataPath, loader, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed: " + err.Error())
			os.Exit(1)
		}
	}()

	waitForShutdown(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown: " + err.Error())
	}
}

// pushSummary sends the latest day's KPIs to the configured webhook.
func pushSummary(cfg *config.Config, loader *file.Loader, dataPath string, logger *storage.Logger) {
	if !cfg.Webhook.Enabled || cfg.Webhook.URL == "" {
		return
	}

	raw, err := loader.Load(dataPath)
	if err != nil {
		logger.Error("summary push: " + err.Error())
		return
	}
	clean, err := processor.Prepare(raw)
	if err != nil {
		logger.Error("summary push: " + err.Error())
		return
	}

	date := processor.DefaultDate(processor.Dates(clean))
	points := processor.CityMeans(processor.FilterDay(clean, date, nil))

	notifier := datapush.NewNotifier(cfg.Webhook.URL)
	if err := notifier.PushDailySummary(processor.Summarize(points, date), points.Nrow()); err != nil {
		logger.Error("summary push: " + err.Error())
		return
	}
	logger.Info("daily summary pushed for " + date)
}

func waitForShutdown(logger *storage.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("received signal " + sig.String() + ", shutting down...")
}
