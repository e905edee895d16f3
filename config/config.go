package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Slots    SlotsConfig    `yaml:"slots"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	SlotEventsTopic    string   `yaml:"slot_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type SlotsConfig struct {
	MarginMinutes  int `yaml:"margin_minutes"`
	LockTTLSeconds int `yaml:"lock_ttl_seconds"`
	InfrasCacheTTL int `yaml:"infras_cache_ttl_seconds"`
}

type WorkerConfig struct {
	StaleSweepMinutes int `yaml:"stale_sweep_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Slots.MarginMinutes == 0 {
		cfg.Slots.MarginMinutes = 90
	}
	if cfg.Slots.LockTTLSeconds == 0 {
		cfg.Slots.LockTTLSeconds = 10
	}
	if cfg.Worker.StaleSweepMinutes == 0 {
		cfg.Worker.StaleSweepMinutes = 5
	}

	return &cfg, nil
}
