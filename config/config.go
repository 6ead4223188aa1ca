package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"resourceshub/utils"

	"github.com/joho/godotenv"
)

// Config holds everything the API server and the CLI tools read from the environment.
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Upload   UploadConfig
	SFTP     SFTPConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            int
	PortAttempts    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	MaxBodyBytes    int64
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// AuthConfig covers login policy. Accounts registered with an address in
// AdminEmails get the admin role.
type AuthConfig struct {
	AdminEmails []string
	MaxSessions int
	TOTPIssuer  string
}

// RedisConfig is optional; an empty URL disables the token blacklist.
type RedisConfig struct {
	URL string
}

type CatalogConfig struct {
	CSVPath         string
	RemoteURL       string
	FetchTimeout    time.Duration
	CacheTTL        time.Duration
	DefaultPageSize int
}

type UploadConfig struct {
	Dir            string
	MaxSize        int64
	BatchSize      int
	ServerFileRoot string
}

type SFTPConfig struct {
	Host      string
	Port      int
	User      string
	Pass      string
	RemoteDir string

	// KnownHosts is an OpenSSH known_hosts file used to verify the server key.
	KnownHosts            string
	InsecureIgnoreHostKey bool
}

type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	env := utils.GetEnvAsString("GO_ENV", "development")
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) && env != "test" {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	env = utils.GetEnvAsString("GO_ENV", env)

	csvPath := utils.GetEnvAsString("CATALOG_CSV_PATH", "data/Online_Courses.csv")

	cfg := &Config{
		Env: env,
		Server: ServerConfig{
			Port:            utils.GetEnvAsInt("PORT", 3000),
			PortAttempts:    utils.GetEnvAsInt("PORT_ATTEMPTS", 10),
			ReadTimeout:     utils.GetEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    utils.GetEnvAsDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
			ShutdownTimeout: utils.GetEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			AllowedOrigins: utils.GetEnvAsList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
			}),
			MaxBodyBytes: utils.GetEnvAsInt64("MAX_BODY_BYTES", 1<<20),
		},
		Database: LoadDatabaseConfig(),
		JWT: JWTConfig{
			Secret:     os.Getenv("JWT_SECRET_KEY"),
			AccessTTL:  utils.GetEnvAsDuration("JWT_EXPIRATION_TIME", time.Hour),
			RefreshTTL: utils.GetEnvAsDuration("REFRESH_TOKEN_EXPIRATION_TIME", 7*24*time.Hour),
			Issuer:     utils.GetEnvAsString("JWT_ISSUER", "resourceshub"),
		},
		Auth: AuthConfig{
			AdminEmails: utils.GetEnvAsList("ADMIN_EMAILS", nil),
			MaxSessions: utils.GetEnvAsInt("MAX_ACTIVE_SESSIONS", 5),
			TOTPIssuer:  utils.GetEnvAsString("TOTP_ISSUER", "ResourcesHub"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Catalog: CatalogConfig{
			CSVPath:         csvPath,
			RemoteURL:       os.Getenv("CATALOG_REMOTE_URL"),
			FetchTimeout:    utils.GetEnvAsDuration("CATALOG_FETCH_TIMEOUT", 10*time.Second),
			CacheTTL:        utils.GetEnvAsDuration("CATALOG_CACHE_TTL", time.Hour),
			DefaultPageSize: utils.GetEnvAsInt("CATALOG_PAGE_SIZE", 100),
		},
		Upload: UploadConfig{
			Dir:            utils.GetEnvAsString("UPLOAD_DIR", "uploads"),
			MaxSize:        utils.GetEnvAsInt64("MAX_UPLOAD_SIZE", 100<<20),
			BatchSize:      utils.GetEnvAsInt("IMPORT_BATCH_SIZE", 200),
			ServerFileRoot: utils.GetEnvAsString("SERVER_FILE_ROOT", "data"),
		},
		SFTP: SFTPConfig{
			Host:      os.Getenv("SFTP_HOST"),
			Port:      utils.GetEnvAsInt("SFTP_PORT", 22),
			User:      os.Getenv("SFTP_USER"),
			Pass:      os.Getenv("SFTP_PASS"),
			RemoteDir: utils.GetEnvAsString("SFTP_REMOTE_DIR", "/"),

			KnownHosts:            os.Getenv("SFTP_KNOWN_HOSTS"),
			InsecureIgnoreHostKey: utils.GetEnvAsBool("SFTP_INSECURE_IGNORE_HOST_KEY", false),
		},
		Log: LogConfig{
			Level:  utils.GetEnvAsString("LOG_LEVEL", "info"),
			Format: utils.GetEnvAsString("LOG_FORMAT", "json"),
		},
	}

	if cfg.Env == "test" && cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "test_secret_key"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing runtime errors.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.Upload.BatchSize <= 0 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be positive, got %d", c.Upload.BatchSize)
	}
	if c.Catalog.DefaultPageSize <= 0 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive, got %d", c.Catalog.DefaultPageSize)
	}
	if c.Auth.MaxSessions <= 0 {
		return fmt.Errorf("MAX_ACTIVE_SESSIONS must be positive, got %d", c.Auth.MaxSessions)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Server.Port)
	}
	if c.Database.DatabaseName == "" {
		return errors.New("MONGO_DB is required")
	}
	return nil
}

func (c *Config) IsTest() bool {
	return c.Env == "test"
}
