package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const ReleaseEnv = "release"

type Config struct {
	BotToken       string `env:"BOT_TOKEN"`
	BotUsername    string `env:"BOT_USERNAME"`
	RunAddress     string `env:"RUN_ADDRESS"`
	DatabaseDSN    string `env:"DATABASE_URI"`
	MigrationsDir  string `env:"MIGRATIONS_DIR"`
	RedisAddr      string `env:"REDIS_ADDR"`
	AdURL          string `env:"AD_URL"`
	PostbackSecret string `env:"POSTBACK_SECRET"`
	JWTSecret      string `env:"JWT_SECRET"`
	AppEnv         string `env:"APP_ENV"`

	AdminIDs         []int64       `env:"ADMIN_IDS"         envSeparator:","`
	ReferralBonus    int64         `env:"REFERRAL_BONUS"    envDefault:"1000"`
	MinWithdrawal    int64         `env:"MIN_WITHDRAWAL"    envDefault:"5000"`
	WithdrawCooldown time.Duration `env:"WITHDRAW_COOLDOWN" envDefault:"5m"`
	UpdateWorkers    uint          `env:"UPDATE_WORKERS"    envDefault:"8"`
	BroadcastWorkers uint          `env:"BROADCAST_WORKERS" envDefault:"5"`
}

// IsRelease сообщает, запущено ли приложение в продакшн окружении.
func (c *Config) IsRelease() bool {
	return c.AppEnv == ReleaseEnv
}

// LoadConfig загружает .env (если он есть), затем переменные окружения. Пустые строковые значения
// берутся из флагов командной строки.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}
	return loadConfig(os.Args[1:])
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadConfig(args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) validate() error {
	switch {
	case c.BotToken == "":
		return errors.New("bot token is not set")
	case c.DatabaseDSN == "":
		return errors.New("database DSN is not set")
	case c.RunAddress != "" && c.JWTSecret == "":
		return errors.New("jwt secret is required when the http api is enabled")
	case c.MinWithdrawal <= 0:
		return fmt.Errorf("min withdrawal must be positive, got %d", c.MinWithdrawal)
	case c.ReferralBonus <= 0:
		return fmt.Errorf("referral bonus must be positive, got %d", c.ReferralBonus)
	}
	return nil
}

func loadFlags(flagConfig *Config, args []string) error {
	fs := flag.NewFlagSet("castile", flag.ContinueOnError)
	fs.StringVar(&flagConfig.RunAddress, "a", "", "HTTP API address in format host:port, empty to disable")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	fs.StringVar(&flagConfig.BotToken, "t", "", "Telegram bot token")
	fs.StringVar(&flagConfig.BotUsername, "u", "CastileMoney_Bot", "Telegram bot username for referral links")
	fs.StringVar(&flagConfig.RedisAddr, "r", "", "Redis address for shared cooldowns, empty for in-memory")

	return fs.Parse(args) //nolint:wrapcheck
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.BotToken = defaultIfBlank(envConfig.BotToken, flagsConfig.BotToken)
	merged.BotUsername = defaultIfBlank(envConfig.BotUsername, flagsConfig.BotUsername)
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	merged.RedisAddr = defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr)
	return &merged
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
