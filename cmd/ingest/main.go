// Command ingest loads a resources CSV into MongoDB without going through
// the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resourceshub/config"
	"resourceshub/logger"
	"resourceshub/repository"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/rs/zerolog"
)

func main() {
	var (
		format  = flag.String("format", "auto", "csv layout: auto (by file name), positional or generic")
		timeout = flag.Duration("timeout", time.Hour, "overall time limit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <file.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fatalLog := zerolog.New(os.Stderr)
		fatalLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	f, err := parseFormat(*format)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -format")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client, err := utils.ConnectMongo(ctx, cfg.Database.ClientOptions(), cfg.Database.ConnectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	db := client.Database(cfg.Database.DatabaseName)
	if err := repository.SetupIndexes(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure indexes")
	}

	// The API server's catalog cache lives in another process; it picks the
	// new rows up on its next TTL reload.
	ingest := usecase.NewIngestService(repository.NewResourceRepo(db), nil, cfg.Upload.BatchSize, log)

	result, err := ingest.ProcessFile(ctx, path, f)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Ingest failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to write result")
	}
}

func parseFormat(s string) (usecase.Format, error) {
	switch s {
	case "auto", "":
		return usecase.FormatAuto, nil
	case "positional":
		return usecase.FormatPositional, nil
	case "generic":
		return usecase.FormatGeneric, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}
