package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig 服务器配置
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`              // 数据库文件路径
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大生命周期
	AutoMigrate     bool          `mapstructure:"auto_migrate"`      // 是否自动迁移
}

// AuthConfig 管理端认证配置
type AuthConfig struct {
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"` // bcrypt 哈希
	JWTSecret         string        `mapstructure:"jwt_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
}

// CurrencyConfig 货币展示配置，可用货币列表由汇率表键派生
type CurrencyConfig struct {
	DisplayCurrency string             `mapstructure:"display_currency"`
	ExchangeRates   map[string]float64 `mapstructure:"exchange_rates"`
}

// StorageConfig 对象存储配置，Bucket 为空表示未启用上传
type StorageConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	KeyPrefix       string        `mapstructure:"key_prefix"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	PresignTTL      time.Duration `mapstructure:"presign_ttl"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Currency CurrencyConfig `mapstructure:"currency"`
	Storage  StorageConfig  `mapstructure:"storage"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// LoadConfig 加载配置：yaml 文件加环境变量覆盖（SERVER_PORT 等）
// configPath 为空时在常规路径下查找 config.yaml
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// 缺省值
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.path", "./data/modelpricehub.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("currency.display_currency", "USD")
	v.SetDefault("currency.exchange_rates", map[string]float64{"USD": 1.0})
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.key_prefix", "uploads/")
	v.SetDefault("storage.presign_ttl", 10*time.Minute)
	v.SetDefault("cors.allow_origins", []string{"*"})

	// 环境变量覆盖，层级用下划线连接
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv 不会让无缺省值的键进入 Unmarshal，必须逐个显式绑定
	// 否则 AUTH_JWT_SECRET 这类敏感配置只能写进文件
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.path", "database.max_open_conns", "database.max_idle_conns",
		"database.conn_max_lifetime", "database.auto_migrate",
		"auth.admin_username", "auth.admin_password_hash", "auth.jwt_secret", "auth.token_ttl",
		"currency.display_currency",
		"storage.endpoint", "storage.region", "storage.bucket",
		"storage.access_key_id", "storage.secret_access_key",
		"storage.key_prefix", "storage.public_base_url", "storage.presign_ttl",
		"cors.allow_origins",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("绑定环境变量失败: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	return &cfg, nil
}
