package config

import (
	"errors"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Lottery  *LotteryConfig  `mapstructure:"lottery"`
	Suggest  *SuggestConfig  `mapstructure:"suggestion"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	SessionSigningKey  string   `mapstructure:"session_signing_key"`
	FixedPassword      string   `mapstructure:"fixed_password"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
}

// LotteryConfig holds the spin distribution. SpinWeights[i] is the percent
// chance of winning i+1 tickets; the weights must sum to 100.
type LotteryConfig struct {
	SpinWeights []int `mapstructure:"spin_weights"`
}

// SuggestConfig points at an OpenAI-compatible chat-completions endpoint.
type SuggestConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	// Secrets come from the environment, never from config.yml.
	if err := bindEnvs(); err != nil {
		return nil, fmt.Errorf("viper.BindEnv -> %w", err)
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))
	})

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func bindEnvs() error {
	bindings := map[string]string{
		"api.session_signing_key": "SESSION_SIGNING_KEY",
		"api.fixed_password":      "FIXED_PASSWORD",
		"api.port":                "PORT",
		"postgres.host":           "POSTGRES_HOST",
		"postgres.port":           "POSTGRES_PORT",
		"postgres.user":           "POSTGRES_USER",
		"postgres.password":       "POSTGRES_PASSWORD",
		"postgres.db_name":        "POSTGRES_DB",
		"suggestion.api_key":      "OPENAI_API_KEY",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}

	return nil
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.API.SessionSigningKey == "" {
		return errors.New("config: api.session_signing_key is required")
	}
	if c.API.FixedPassword == "" {
		return errors.New("config: api.fixed_password is required")
	}

	if c.Lottery == nil || len(c.Lottery.SpinWeights) == 0 {
		return errors.New("config: lottery.spin_weights is required")
	}
	total := 0
	for i, w := range c.Lottery.SpinWeights {
		if w <= 0 {
			return fmt.Errorf("config: lottery.spin_weights[%d] must be positive", i)
		}
		total += w
	}
	if total != 100 {
		return fmt.Errorf("config: lottery.spin_weights must sum to 100, got %d", total)
	}

	return nil
}
