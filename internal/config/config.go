package config

import (
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/bytesize"
	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	StorageDriver  string
	StorageRoot    string
	AssetUploadDir string
	AssetMaxSize   int64

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	RedisAddr     string
	RedisPassword string

	JWTPublicKey  string
	JWTAudience   string
	JWTWriterRole string
	PublicBaseURL string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("STORAGE_DRIVER", StorageDriverLocal)
	viper.SetDefault("STORAGE_ROOT", ".")
	viper.SetDefault("ASSET_UPLOAD_DIR", model.DefaultUploadDir)
	viper.SetDefault("MINIO_BUCKET", "assets")
	viper.SetDefault("JWT_AUDIENCE", "assets")
	viper.SetDefault("JWT_WRITER_ROLE", "assets:write")

	for _, key := range []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	driver := strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	switch driver {
	case StorageDriverLocal:
	case StorageDriverMinio:
		if viper.GetString("MINIO_ENDPOINT") == "" {
			return nil, fmt.Errorf("MINIO_ENDPOINT is required when STORAGE_DRIVER is %q", StorageDriverMinio)
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", driver)
	}

	maxSize := int64(model.DefaultMaxSize)
	if raw := viper.GetString("ASSET_MAX_SIZE"); raw != "" {
		maxSize = bytesize.ParseSize(raw)
		if maxSize <= 0 {
			return nil, fmt.Errorf("invalid ASSET_MAX_SIZE %q", raw)
		}
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		StorageDriver:  driver,
		StorageRoot:    viper.GetString("STORAGE_ROOT"),
		AssetUploadDir: path.Clean(strings.Trim(viper.GetString("ASSET_UPLOAD_DIR"), "/")),
		AssetMaxSize:   maxSize,

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		MinioBucket:    viper.GetString("MINIO_BUCKET"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		JWTPublicKey:  viper.GetString("JWT_PUBLIC_KEY"),
		JWTAudience:   viper.GetString("JWT_AUDIENCE"),
		JWTWriterRole: viper.GetString("JWT_WRITER_ROLE"),
		PublicBaseURL: strings.TrimRight(viper.GetString("PUBLIC_BASE_URL"), "/"),
	}, nil
}
