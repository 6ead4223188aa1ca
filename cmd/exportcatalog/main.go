// Command exportcatalog writes every stored resource to a catalog CSV and
// optionally pushes it to an SFTP drop.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"resourceshub/config"
	"resourceshub/export"
	"resourceshub/logger"
	"resourceshub/repository"
	"resourceshub/sftpclient"
	"resourceshub/utils"

	"github.com/rs/zerolog"
)

func main() {
	var (
		outPath    = flag.String("out", "exports/resources.csv", "output csv path")
		uploadSFTP = flag.Bool("sftp", false, "upload the generated CSV via SFTP")
		remoteName = flag.String("remote-name", "", "remote file name (defaults to the base name of -out)")
		timeout    = flag.Duration("timeout", 30*time.Minute, "overall time limit")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatalLog := zerolog.New(os.Stderr)
		fatalLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

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

	resources := repository.NewResourceRepo(client.Database(cfg.Database.DatabaseName))

	start := time.Now()
	rows, err := export.WriteResourcesFile(ctx, *outPath, resources)
	if err != nil {
		log.Fatal().Err(err).Str("out", *outPath).Msg("Export failed")
	}
	log.Info().
		Int("rows", rows).
		Str("out", *outPath).
		Dur("took", time.Since(start)).
		Msg("Exported resources")

	if !*uploadSFTP {
		return
	}

	name := *remoteName
	if name == "" {
		name = filepath.Base(*outPath)
	}
	upCfg := sftpConfig(cfg.SFTP)

	if err := sftpclient.UploadFile(ctx, upCfg, *outPath, name); err != nil {
		log.Fatal().Err(err).Msg("SFTP upload failed")
	}
	log.Info().
		Str("host", upCfg.Host).
		Str("path", upCfg.RemotePath(name)).
		Msg("Uploaded export")
}

func sftpConfig(c config.SFTPConfig) sftpclient.Config {
	return sftpclient.Config{
		Host:                  c.Host,
		Port:                  c.Port,
		User:                  c.User,
		Pass:                  c.Pass,
		RemoteDir:             c.RemoteDir,
		KnownHosts:            c.KnownHosts,
		InsecureIgnoreHostKey: c.InsecureIgnoreHostKey,
	}
}
