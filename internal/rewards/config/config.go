package config

import (
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultAdminID = 8005837232

type Config struct {
	LogLevel string   `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTP     HTTP     `yaml:"http"`
	API      API      `yaml:"api"`
	Identity Identity `yaml:"identity"`
	Content  Content  `yaml:"content"`
	Spin     Spin     `yaml:"spin"`
}

type HTTP struct {
	Port       string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"72h"`
}

type API struct {
	URL     string        `yaml:"url" env:"API_URL" env-default:"https://dracodev.pythonanywhere.com/api"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s"`
}

type Identity struct {
	BotToken string        `yaml:"bot_token" env:"BOT_TOKEN"`
	MaxAge   time.Duration `yaml:"max_age" env:"INIT_DATA_MAX_AGE" env-default:"24h"`
	AdminID  int64         `yaml:"admin_id" env:"ADMIN_ID" env-default:"8005837232"`
}

type Content struct {
	NetworkPageSize        int  `yaml:"network_page_size" env:"NETWORK_PAGE_SIZE" env-default:"5"`
	ContentPageSize        int  `yaml:"content_page_size" env:"CONTENT_PAGE_SIZE" env-default:"20"`
	LeaderboardLimit       int  `yaml:"leaderboard_limit" env:"LEADERBOARD_LIMIT" env-default:"100"`
	HistoryLimit           int  `yaml:"history_limit" env:"HISTORY_LIMIT" env-default:"50"`
	LegacyCategoryFallback bool `yaml:"legacy_category_fallback" env:"LEGACY_CATEGORY_FALLBACK" env-default:"true"`
}

type Spin struct {
	Duration      time.Duration `yaml:"duration" env:"SPIN_DURATION" env-default:"3s"`
	Turns         int           `yaml:"turns" env:"SPIN_TURNS" env-default:"8"`
	FrameInterval time.Duration `yaml:"frame_interval" env:"SPIN_FRAME_INTERVAL" env-default:"16ms"`
}

// MustLoad читает CONFIG_PATH (если задан) и переменные окружения
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}
	if cfg.HTTP.JWTSecret == "" {
		panic("JWT_SECRET is required")
	}
	return cfg
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(err, "os.Stat failed: ")
		}
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, errors.Wrap(err, "cleanenv.ReadConfig failed: ")
		}
		return cfg, cfg.validate()
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "cleanenv.ReadEnv failed: ")
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.API.URL == "" {
		return errors.New("api url is required")
	}
	if c.Content.NetworkPageSize <= 0 || c.Content.ContentPageSize <= 0 {
		return errors.New("page sizes must be positive")
	}
	if c.Spin.Duration <= 0 || c.Spin.FrameInterval <= 0 {
		return errors.New("spin duration and frame interval must be positive")
	}
	return nil
}
