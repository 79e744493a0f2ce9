package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"Premiacao/internal/collector"
	"Premiacao/internal/config"
	"Premiacao/internal/notifier"
	"Premiacao/internal/recorder"
	"Premiacao/internal/scheduler"
	"Premiacao/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Premiacao starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init roster store
	st, err := store.NewFileStore(cfg.Store.File)
	if err != nil {
		log.Fatalf("[FATAL] init store: %v", err)
	}

	// Init import source
	var col *collector.Collector
	switch {
	case cfg.Import.URL != "":
		col = collector.NewCollector(collector.NewHTTPSource(cfg.Import.URL, cfg.Import.Token, cfg.Proxy), st)
	case cfg.Import.File != "":
		col = collector.NewCollector(&collector.FileSource{Path: cfg.Import.File}, st)
	}
	if col != nil {
		log.Printf("[INFO] import source: %s", col.Source.Name())
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if !tn.Enabled() {
		log.Println("[WARN] telegram not configured, messages will only be logged")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, st, col, tn, rec, cfg.Report.Dir, cfg.ShowSalaries())
	if err := sched.RegisterAll(cfg.Schedule.MonthlyCron, cfg.Schedule.ImportCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, closing previous month now")
		go sched.RunMonthlyNow()
	}

	log.Println("[INFO] Premiacao is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] Premiacao stopped")
}
