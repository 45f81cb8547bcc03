package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"go-splendor/engine"
)

type Config struct {
	Port        int      `env:"PORT" envDefault:"8000"`
	GinMode     string   `env:"GIN_MODE" envDefault:"release"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"LOG_FORMAT" envDefault:"json"` // json or console
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	Redis RedisConfig `envPrefix:"REDIS_"`
	MySQL MySQLConfig `envPrefix:"MYSQL_"`
	JWT   JWTConfig   `envPrefix:"JWT_"`
	Game  GameConfig
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// MySQLConfig is optional. Finished games are only archived when Addr is set.
type MySQLConfig struct {
	Addr     string `env:"ADDR"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASSWORD"`
	Database string `env:"DATABASE" envDefault:"splendor"`
}

func (c MySQLConfig) Enabled() bool {
	return c.Addr != ""
}

type JWTConfig struct {
	AccessSecret  string        `env:"ACCESS_SECRET" envDefault:"access-secret"`
	RefreshSecret string        `env:"REFRESH_SECRET" envDefault:"refresh-secret"`
	AccessTTL     time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TTL" envDefault:"168h"`
}

type GameConfig struct {
	VictoryPoints   int    `env:"VICTORY_POINTS" envDefault:"15"`
	NoblePolicy     string `env:"NOBLE_POLICY" envDefault:"lowest_id"`
	LastRoundPolicy string `env:"LAST_ROUND_POLICY" envDefault:"trigger_seat"`
	ShuffleDecks    bool   `env:"SHUFFLE_DECKS" envDefault:"true"`
}

// Rules turns the game settings into engine rules.
func (g GameConfig) Rules() (engine.Rules, error) {
	rules := engine.DefaultRules()
	if g.VictoryPoints > 0 {
		rules.VictoryPoints = g.VictoryPoints
	}

	noble, err := engine.ParseNoblePolicy(g.NoblePolicy)
	if err != nil {
		return engine.Rules{}, err
	}
	lastRound, err := engine.ParseLastRoundPolicy(g.LastRoundPolicy)
	if err != nil {
		return engine.Rules{}, err
	}
	rules.NoblePolicy = noble
	rules.LastRoundPolicy = lastRound
	return rules, nil
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

// LoadFrom parses cfg from the given variables only.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := c.Game.Rules(); err != nil {
		return fmt.Errorf("game config: %w", err)
	}
	return nil
}
