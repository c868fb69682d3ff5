package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"heritage-map/models"
)

type Config struct {
	Server  ServerConfig        `toml:"server"`
	Redis   RedisConfig         `toml:"redis"`
	Mongo   MongoConfig         `toml:"mongo"`
	Auth    AuthConfig          `toml:"auth"`
	Site    models.SiteDefaults `toml:"site"`
	CORS    CORSConfig          `toml:"cors"`
	Logging LoggingConfig       `toml:"logging"`
	Refresh RefreshConfig       `toml:"refresh"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	DB       int    `toml:"db"`
	Password string `toml:"password"`
}

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type AuthConfig struct {
	JWTSecret  string `toml:"jwt_secret"`
	APIKeyHash string `toml:"api_key_hash"` // bcrypt hash of the service key accepted by the refresh endpoint
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

type RefreshConfig struct {
	Schedule string `toml:"schedule"` // cron expression, empty disables scheduled rebuilds
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Mongo:  MongoConfig{URI: "mongodb://localhost:27017", Database: "heritage"},
		Site: models.SiteDefaults{
			SiteName:           "Hum Pahadi Haii",
			SiteOrigin:         "https://humpahadihaii.in",
			DefaultTitle:       "Hum Pahadi Haii - Uttarakhand Culture & Heritage",
			DefaultDescription: "Explore the villages, districts, food, festivals and living culture of Uttarakhand.",
			DefaultImage:       "/og-image.jpg",
			TwitterSite:        "@humpahadihaii",
			Locale:             "en_IN",
			BrandKeywords:      []string{"Hum Pahadi", "HumPahadi"},
		},
		CORS:    CORSConfig{AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"}},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration: defaults, then the optional TOML file at
// path, then a .env file if present, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value %q: %w", v, err)
		}
		cfg.Redis.DB = db
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		cfg.Mongo.Database = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("REFRESH_API_KEY_HASH"); v != "" {
		cfg.Auth.APIKeyHash = v
	}
	if v := os.Getenv("SITE_ORIGIN"); v != "" {
		cfg.Site.SiteOrigin = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SITE_NAME"); v != "" {
		cfg.Site.SiteName = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("REFRESH_SCHEDULE"); v != "" {
		cfg.Refresh.Schedule = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
