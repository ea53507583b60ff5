package config

import (
	"errors"
	"io/fs"

	"tekhe-dashboard/internal/service"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	Dataset DatasetConfig
	KPI     KPIConfig
	Partner PartnerConfig
}

type AppConfig struct {
	Env string
}

type LogConfig struct {
	Level  string
	Format string
}

type DatasetConfig struct {
	Path string
}

type KPIConfig struct {
	Cpn4TargetRatio float64
}

type PartnerConfig struct {
	PseudonymKey string
}

// LoadConfig reads envFile when present, then lets the environment override
// every key. A missing envFile is not an error.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DATASET_PATH", "data/snapshot.json")
	v.SetDefault("KPI_CPN4_TARGET_RATIO", service.DefaultCpn4TargetRatio)
	v.SetDefault("PARTNER_PSEUDONYM_KEY", "")

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Dataset: DatasetConfig{
			Path: v.GetString("DATASET_PATH"),
		},
		KPI: KPIConfig{
			Cpn4TargetRatio: v.GetFloat64("KPI_CPN4_TARGET_RATIO"),
		},
		Partner: PartnerConfig{
			PseudonymKey: v.GetString("PARTNER_PSEUDONYM_KEY"),
		},
	}

	return config, nil
}
