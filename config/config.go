package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Inventory InventoryConfig `yaml:"inventory"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	Booking   BookingConfig   `yaml:"booking"`
	Notify    NotifyConfig    `yaml:"notify"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Name           string `yaml:"name"`
	SSLMode        string `yaml:"ssl_mode"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d DatabaseConfig) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	RoutingKey         string   `yaml:"routing_key"`
	GroupID            string   `yaml:"group_id"`
}

// InventoryConfig points at the remotely owned flight inventory
// service consumed over HTTP.
type InventoryConfig struct {
	BaseURL         string `yaml:"base_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	SnapshotTTLSecs int    `yaml:"snapshot_ttl_seconds"`
}

func (i InventoryConfig) Timeout() time.Duration {
	if i.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(i.TimeoutSeconds) * time.Second
}

func (i InventoryConfig) SnapshotTTL() time.Duration {
	return time.Duration(i.SnapshotTTLSecs) * time.Second
}

type BreakerConfig struct {
	FailureThreshold int `yaml:"failure_threshold"`
	CooldownSeconds  int `yaml:"cooldown_seconds"`
	HalfOpenProbes   int `yaml:"half_open_probes"`
}

func (b BreakerConfig) Cooldown() time.Duration {
	if b.CooldownSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.CooldownSeconds) * time.Second
}

type BookingConfig struct {
	PNRPrefix     string `yaml:"pnr_prefix"`
	PNRMaxRetries int    `yaml:"pnr_max_retries"`
}

type NotifyConfig struct {
	QueueSize int `yaml:"queue_size"`
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

	return &cfg, nil
}
