package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

// StorageConfig maps every resource to its document location.
// Files are used by the "file" driver, DSN by the "sqlite" driver.
type StorageConfig struct {
	Driver   string `yaml:"driver" validate:"required|in:file,sqlite"`
	Offers   string `yaml:"offers" validate:"required"`
	Products string `yaml:"products" validate:"required"`
	Users    string `yaml:"users" validate:"required"`
	Chat     string `yaml:"chat" validate:"required"`
	DSN      string `yaml:"dsn"`
}

type UploadConfig struct {
	MediaDir         string `yaml:"mediaDir" validate:"required"`
	PublicDir        string `yaml:"publicDir" validate:"required"`
	MaxImageSize     int64  `yaml:"maxImageSize" validate:"required|min:1"`
	MaxThumbnailSize int64  `yaml:"maxThumbnailSize" validate:"required|min:1"`
	MaxVideoSize     int64  `yaml:"maxVideoSize" validate:"required|min:1"`
}

type AuthConfig struct {
	AdminUsername   string        `yaml:"adminUsername" validate:"required"`
	AdminPassword   string        `yaml:"adminPassword" validate:"required"`
	PasswordHashing string        `yaml:"passwordHashing" validate:"required|in:plain,bcrypt"`
	SessionMaxAge   time.Duration `yaml:"sessionMaxAge" validate:"required|min:1"`
	Production      bool          `yaml:"production"`
}

// CacheConfig.Size is in megabytes.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"serviceName"`
	Environment string `yaml:"environment"`
}

type BackupConfig struct {
	Enabled        bool          `yaml:"enabled"`
	FilePath       string        `yaml:"filePath" validate:"required"`
	Interval       time.Duration `yaml:"interval" validate:"required|min:1"`
	RestoreOnStart bool          `yaml:"restoreOnStart"`
}

type CorsConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type OffersConfig struct {
	CarouselInterval time.Duration `yaml:"carouselInterval"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Storage   StorageConfig `yaml:"storage"`
	Upload    UploadConfig  `yaml:"upload"`
	Auth      AuthConfig    `yaml:"auth"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Tracing   TracingConfig `yaml:"tracing"`
	Backup    BackupConfig  `yaml:"backup"`
	Cors      CorsConfig    `yaml:"cors"`
	Offers    OffersConfig  `yaml:"offers"`
}
