package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	ViewDedupTTL int    `mapstructure:"view_dedup_ttl"` // 秒，同一用户重复观看的去重窗口
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ViewDedupDuration 返回观看去重窗口
func (r *RedisConfig) ViewDedupDuration() time.Duration {
	if r.ViewDedupTTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(r.ViewDedupTTL) * time.Second
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint  string   `mapstructure:"endpoint"`
	AccessKey string   `mapstructure:"access_key"`
	SecretKey string   `mapstructure:"secret_key"`
	UseSSL    bool     `mapstructure:"use_ssl"`
	Buckets   []string `mapstructure:"buckets"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Hosts []string          `mapstructure:"hosts"`
	Index map[string]string `mapstructure:"index"`
}

// JWTConfig JWT配置（访问令牌 + 刷新令牌双密钥）
type JWTConfig struct {
	AccessSecret      string `mapstructure:"access_secret"`
	AccessExpireMins  int    `mapstructure:"access_expire_mins"`
	RefreshSecret     string `mapstructure:"refresh_secret"`
	RefreshExpireDays int    `mapstructure:"refresh_expire_days"`
}

// AccessExpireDuration 返回访问令牌有效期
func (j *JWTConfig) AccessExpireDuration() time.Duration {
	return time.Duration(j.AccessExpireMins) * time.Minute
}

// RefreshExpireDuration 返回刷新令牌有效期
func (j *JWTConfig) RefreshExpireDuration() time.Duration {
	return time.Duration(j.RefreshExpireDays) * 24 * time.Hour
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// 全局配置实例
var globalConfig *Config

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// 读取环境变量
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	globalConfig = &cfg

	return &cfg, nil
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

// GetApp 获取应用配置
func GetApp() *AppConfig {
	return &Get().App
}

// GetDatabase 获取数据库配置
func GetDatabase() *DatabaseConfig {
	return &Get().Database
}

// GetRedis 获取Redis配置
func GetRedis() *RedisConfig {
	return &Get().Redis
}

// GetMinIO 获取MinIO配置
func GetMinIO() *MinIOConfig {
	return &Get().MinIO
}

// GetKafka 获取Kafka配置
func GetKafka() *KafkaConfig {
	return &Get().Kafka
}

// GetElasticsearch 获取Elasticsearch配置
func GetElasticsearch() *ElasticsearchConfig {
	return &Get().Elasticsearch
}

// GetJWT 获取JWT配置
func GetJWT() *JWTConfig {
	return &Get().JWT
}

// GetLog 获取日志配置
func GetLog() *LogConfig {
	return &Get().Log
}
