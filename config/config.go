package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// BackupConfig points at the Mongo instance that keeps cold copies of
// archived weeks. Backup is best-effort; an empty URI disables it.
type BackupConfig struct {
	MongoURI   string `yaml:"mongo_uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// BoardConfig tunes the rollover engine.
type BoardConfig struct {
	DefaultWeeklyGoal        int  `yaml:"default_weekly_goal"`
	AutoRolloverEnabled      bool `yaml:"auto_rollover_enabled"`
	AutoRolloverCheckMinutes int  `yaml:"auto_rollover_check_minutes"`
}

// AutoRolloverCheck is the interval between Sunday auto-rollover checks.
func (b BoardConfig) AutoRolloverCheck() time.Duration {
	return time.Duration(b.AutoRolloverCheckMinutes) * time.Minute
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type Config struct {
	DB     DBConfig     `yaml:"db"`
	MQ     MQConfig     `yaml:"mq"`
	Redis  RedisConfig  `yaml:"redis"`
	Backup BackupConfig `yaml:"backup"`
	Board  BoardConfig  `yaml:"board"`
	Server ServerConfig `yaml:"server"`
}

func Load() *Config {
	f, err := os.Open("config.yaml")
	if err != nil {
		log.Fatalf("failed to open config.yaml: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config.yaml: %v", err)
	}

	if cfg.Board.DefaultWeeklyGoal == 0 {
		cfg.Board.DefaultWeeklyGoal = 60
	}
	if cfg.Board.AutoRolloverCheckMinutes == 0 {
		cfg.Board.AutoRolloverCheckMinutes = 10
	}

	// 环境变量覆盖（生产环境使用）
	overrideFromEnv(&cfg)

	return &cfg
}

func overrideFromEnv(cfg *Config) {
	// DB配置
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	// MQ配置
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	// Redis配置
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	// Backup配置
	if uri := os.Getenv("BACKUP_MONGO_URI"); uri != "" {
		cfg.Backup.MongoURI = uri
	}

	// Server配置
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
}
