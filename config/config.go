package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Dataset  DatasetConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	// Driver selects the gorm dialect: "sqlite" or "postgres".
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DatasetConfig struct {
	URL    string
	Limit  int
	Offset int
	// FetchTimeoutSec bounds the upstream GET; 0 disables the timeout.
	FetchTimeoutSec int
	// MinFetchIntervalSec paces requests against the upstream API.
	MinFetchIntervalSec int
}

type CORSConfig struct {
	AllowedOrigins string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads config.yaml if present and applies environment overrides
// (dotted keys with "_", e.g. SERVER_PORT, DATABASE_DRIVER, DATASET_URL).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "assessments.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "assessments")
	v.SetDefault("database.password", "assessments_dev_password")
	v.SetDefault("database.name", "assessments")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("dataset.url", "https://data.cambridgema.gov/resource/eey2-rv59.csv")
	v.SetDefault("dataset.limit", 40000)
	v.SetDefault("dataset.offset", 150)
	v.SetDefault("dataset.fetchtimeoutsec", 60)
	v.SetDefault("dataset.minfetchintervalsec", 5)

	v.SetDefault("cors.allowedorigins", "*")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
