package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/internal/config"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/internal/snapshot"
	"github.com/fastygo/ministryflow/pkg/logger"
)

const usage = "usage: snapshot export|import <file>"

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	command, path := os.Args[1], os.Args[2]

	cfg := config.MustLoad()
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	store, err := kvstore.Open(cfg.Storage.Path)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.String("path", cfg.Storage.Path), zap.Error(err))
	}
	defer store.Close()

	switch command {
	case "export":
		err = exportTo(store, path, zapLogger)
	case "import":
		err = importFrom(store, path, zapLogger)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		zapLogger.Fatal("snapshot failed", zap.String("command", command), zap.Error(err))
	}
	zapLogger.Info("snapshot complete", zap.String("command", command), zap.String("file", path))
}

func exportTo(store *kvstore.Store, path string, logger *zap.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.Export(store, f, logger); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func importFrom(store *kvstore.Store, path string, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return snapshot.Import(store, f, logger)
}
