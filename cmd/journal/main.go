package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tradebook/tradebook/internal/journal"
	"github.com/tradebook/tradebook/pkg/config"
	"github.com/tradebook/tradebook/pkg/logger"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	getenv := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	var (
		cfgPath  = flag.String("config", getenv("TRADEBOOK_CONFIG", ""), "YAML config file path")
		dbPath   = flag.String("db", "", "SQLite db file path (overrides config)")
		logLevel = flag.String("log-level", "", "log level (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}

	store, err := journal.Open(journal.Config{DBPath: cfg.DBPath})
	if err != nil {
		logger.Errorf("open journal store failed: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts, err := store.TableCounts(ctx)
	if err != nil {
		logger.Errorf("count tables failed: %v", err)
		os.Exit(1)
	}

	logger.Infof("journal database ready at %s (env=%s)", cfg.DBPath, cfg.Env)
	for _, table := range []string{"users", "user_settings", "sub_accounts", "trades"} {
		logger.Infof("  %-14s %d rows", table, counts[table])
	}
}
