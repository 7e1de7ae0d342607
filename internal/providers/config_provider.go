package providers

import (
	"fmt"
	"kinstore/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 3000)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "logs")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.offers", "data/offers.json")
	v.SetDefault("storage.products", "public/data/products.json")
	v.SetDefault("storage.users", "data/users.json")
	v.SetDefault("storage.chat", "data/chat.json")

	v.SetDefault("upload.mediaDir", "media")
	v.SetDefault("upload.publicDir", "public")
	v.SetDefault("upload.maxImageSize", 2<<20)
	v.SetDefault("upload.maxThumbnailSize", 2<<20)
	v.SetDefault("upload.maxVideoSize", 10<<20)

	v.SetDefault("auth.adminUsername", "admin")
	v.SetDefault("auth.adminPassword", "admin123")
	v.SetDefault("auth.passwordHashing", "plain")
	v.SetDefault("auth.sessionMaxAge", 24*time.Hour)

	v.SetDefault("cache.size", 16)
	v.SetDefault("cache.ttl", 5)

	v.SetDefault("tracing.serviceName", "kinstore")

	v.SetDefault("backup.filePath", "data/backup.zst")
	v.SetDefault("backup.interval", 10*time.Minute)

	v.SetDefault("offers.carouselInterval", 8*time.Second)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	if flags.EnvPath != "" {
		if err := godotenv.Load(flags.EnvPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to load env file: %w", err)
		}
	}

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "KIN_LOG_LEVEL")
	v.BindEnv("webServer.port", "KIN_PORT")
	v.BindEnv("storage.driver", "KIN_STORAGE_DRIVER")
	v.BindEnv("storage.dsn", "KIN_STORAGE_DSN")
	v.BindEnv("auth.adminUsername", "KIN_ADMIN_USERNAME")
	v.BindEnv("auth.adminPassword", "KIN_ADMIN_PASSWORD")
	v.BindEnv("auth.production", "KIN_PRODUCTION")
	v.BindEnv("cache.enabled", "KIN_CACHE_ENABLED")
	v.BindEnv("cache.size", "KIN_CACHE_SIZE")
	v.BindEnv("tracing.enabled", "KIN_TRACING_ENABLED")
	v.BindEnv("tracing.endpoint", "KIN_TRACING_ENDPOINT")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "KinStore"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
