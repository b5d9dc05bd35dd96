package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppSubConfig struct {
	// BudgetCeiling is the shared spending ceiling every submitter's
	// running balance is computed against.
	BudgetCeiling float64 `mapstructure:"budget_ceiling"`
}

// BootstrapUser is one entry of the seed user list.
type BootstrapUser struct {
	Email string `mapstructure:"email"`
	Role  string `mapstructure:"role"`
}

type BootstrapConfig struct {
	Users []BootstrapUser `mapstructure:"users"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	App       AppSubConfig    `mapstructure:"app"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
}

// DefaultBudgetCeiling applies when app.budget_ceiling is absent.
const DefaultBudgetCeiling = 48000

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. BT_SERVER_PORT=9000
		v.SetEnvPrefix("BT") // budget tracker
		v.AutomaticEnv()

		v.SetDefault("app.budget_ceiling", DefaultBudgetCeiling)
		v.SetDefault("jwt.expire_hours", 24)
		v.SetDefault("log.level", "info")

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
