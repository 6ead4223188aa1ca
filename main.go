package main

import (
	"context"
	"os"
	"time"

	"resourceshub/catalog"
	"resourceshub/config"
	"resourceshub/handler"
	"resourceshub/logger"
	"resourceshub/repository"
	"resourceshub/services"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

const sessionTTL = 7 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatalLog := zerolog.New(os.Stderr)
		fatalLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if log.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.InitValidator()

	ctx := context.Background()
	started := time.Now()

	client, err := utils.ConnectMongo(ctx, cfg.Database.ClientOptions(), cfg.Database.ConnectTimeout)
	if client == nil {
		log.Fatal().Err(err).Msg("Failed to create MongoDB client")
	}
	if err != nil {
		// Catalog endpoints do not need the database.
		log.Warn().Err(err).Msg("MongoDB is unreachable, starting without it")
	}
	db := client.Database(cfg.Database.DatabaseName)
	if err == nil {
		if err := repository.SetupIndexes(ctx, db, log); err != nil {
			log.Warn().Err(err).Msg("Failed to ensure indexes")
		}
	}

	router := buildRouter(ctx, cfg, db, started, log)

	if err := serve(router, cfg.Server, log); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(disconnectCtx); err != nil {
		log.Warn().Err(err).Msg("MongoDB disconnect failed")
	}
}

func newCatalog(cfg config.CatalogConfig, log zerolog.Logger) *catalog.Catalog {
	var src catalog.Source = catalog.FileSource{Path: cfg.CSVPath}
	if cfg.RemoteURL != "" {
		src = catalog.FallbackSource{
			Primary:  catalog.HTTPSource{URL: cfg.RemoteURL, Timeout: cfg.FetchTimeout},
			Fallback: src,
			Log:      log,
		}
	}
	return catalog.New(src, cfg.CacheTTL, log)
}

func buildRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, started time.Time, log zerolog.Logger) *gin.Engine {
	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	todos := repository.NewTodosRepo(db)
	posts := repository.NewPostRepo(db)
	records := repository.NewRecordRepo(db)
	resources := repository.NewResourceRepo(db)
	subscribers := repository.NewSubscriberRepo(db)

	cat := newCatalog(cfg.Catalog, log)

	// Redis is optional; without it logout cannot revoke tokens early and
	// session lists are read straight from MongoDB.
	var (
		blacklist    services.TokenBlacklist
		sessionCache usecase.SessionLister
	)
	if cfg.Redis.URL != "" {
		rdb, err := services.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, token blacklist disabled")
		} else {
			blacklist = services.NewRedisTokenBlacklist(rdb)
			sessionCache = services.NewSessionCache(rdb)
		}
	}

	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	auth := usecase.NewAuthService(users, sessions, tokens, blacklist, services.TwoFactor{Issuer: cfg.Auth.TOTPIssuer}, sessionCache,
		usecase.AuthOptions{SessionTTL: sessionTTL, MaxSessions: cfg.Auth.MaxSessions, AdminEmails: cfg.Auth.AdminEmails}, log)

	ingest := usecase.NewIngestService(resources, cat, cfg.Upload.BatchSize, log)
	pinger := repository.Pinger{DB: db}
	status := func(ctx context.Context) (repository.DBStatus, error) { return repository.Status(ctx, db) }

	return handler.NewRouter(handler.RouterConfig{
		Resources: handler.NewResourcesHandler(usecase.NewResourceService(cat, resources, cfg.Catalog.DefaultPageSize), log),
		Upload: handler.NewUploadHandler(ingest, status, handler.UploadOptions{
			Dir:            cfg.Upload.Dir,
			ServerFileRoot: cfg.Upload.ServerFileRoot,
			CatalogCSVPath: cfg.Catalog.CSVPath,
		}, log),
		Subscribers: handler.NewSubscribersHandler(usecase.NewSubscriberService(subscribers), log),
		Auth:        handler.NewAuthHandler(auth, sessionTTL, log),
		Profile:     handler.NewProfileHandler(usecase.NewProfileService(users, todos, records, posts, sessions, sessionCache, log), log),
		Todos:       handler.NewTodoHandler(usecase.NewTodosService(todos), log),
		Forum:       handler.NewForumHandler(usecase.NewForumService(posts), log),
		Records:     handler.NewRecordsHandler(usecase.NewRecordService(records), log),
		Health:      handler.NewHealthHandler(pinger, started),

		Authenticator:  auth,
		Sessions:       auth,
		Database:       pinger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		MaxUploadBytes: cfg.Upload.MaxSize,
		CatalogMaxAge:  cfg.Catalog.CacheTTL,
		Log:            log,
	})
}
