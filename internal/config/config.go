package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig     `mapstructure:"admin"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Test      TestConfig      `mapstructure:"test"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

// AdminConfig 管理员账号由邮箱指定，Google 登录匹配该邮箱即授予管理员角色
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"` // 本地兜底登录密码，首次启动时写入
}

type AuthConfig struct {
	// Google ID token 校验端点，留空时使用官方 tokeninfo
	TokenInfoURL   string   `mapstructure:"tokeninfo_url"`
	AllowedDomains []string `mapstructure:"allowed_domains"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"` // local / minio
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type UploadConfig struct {
	MaxFileSize  int64    `mapstructure:"max_file_size"` // 字节
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// TestConfig 模拟测试的核心参数，注入会话而不是写死在逻辑里
type TestConfig struct {
	DefaultTimeSeconds int      `mapstructure:"default_time_seconds"`
	NegativeMarking    float64  `mapstructure:"negative_marking"`
	LowTimeThreshold   int      `mapstructure:"low_time_threshold"`
	QuestionsPerTest   int      `mapstructure:"questions_per_test"`
	Sections           []string `mapstructure:"sections"`
}

type TelegramConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	BotToken    string `mapstructure:"bot_token"`
	ChannelID   int64  `mapstructure:"channel_id"`
	ChannelLink string `mapstructure:"channel_link"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("ODIGYAN")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT / Admin
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("admin.email", "ADMIN_EMAIL")
	viper.BindEnv("admin.password", "ADMIN_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Telegram
	viper.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	viper.BindEnv("telegram.channel_id", "TELEGRAM_CHANNEL_ID")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	applyTestDefaults(&cfg.Test)

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func applyTestDefaults(tc *TestConfig) {
	if tc.DefaultTimeSeconds <= 0 {
		tc.DefaultTimeSeconds = 1800 // 30 minutes
	}
	if tc.NegativeMarking <= 0 {
		tc.NegativeMarking = 0.25
	}
	if tc.LowTimeThreshold <= 0 {
		tc.LowTimeThreshold = 300 // 5 minutes
	}
	if tc.QuestionsPerTest <= 0 {
		tc.QuestionsPerTest = 20
	}
	if len(tc.Sections) == 0 {
		tc.Sections = []string{"Physics", "Chemistry", "Mathematics", "GK"}
	}
}
