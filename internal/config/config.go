package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config defines the application configuration structure
type Config struct {
	Sources SourcesConfig `mapstructure:"sources"`
	Log     LogConfig     `mapstructure:"log"`
}

// SourcesConfig defines where the four price series come from
type SourcesConfig struct {
	Format     string `mapstructure:"format"`
	DateColumn string `mapstructure:"date_column"`
	DateLayout string `mapstructure:"date_layout"`
	Oil        string `mapstructure:"oil"`
	Petrol     string `mapstructure:"petrol"`
	Plastic    string `mapstructure:"plastic"`
	Tar        string `mapstructure:"tar"`
}

// LogConfig defines logging behaviour
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig loads configuration from file and overrides with environment
// variables. A missing file is not an error; defaults fill the gaps.
func LoadConfig(path string, logger zerolog.Logger) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PRICECORR")

	v.BindEnv("sources.format", "PRICECORR_FORMAT")
	v.BindEnv("sources.date_column", "PRICECORR_DATE_COLUMN")
	v.BindEnv("sources.date_layout", "PRICECORR_DATE_LAYOUT")
	v.BindEnv("sources.oil", "PRICECORR_OIL")
	v.BindEnv("sources.petrol", "PRICECORR_PETROL")
	v.BindEnv("sources.plastic", "PRICECORR_PLASTIC")
	v.BindEnv("sources.tar", "PRICECORR_TAR")
	v.BindEnv("log.level", "PRICECORR_LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("config file not found, falling back to environment variables")
		} else {
			logger.Warn().Err(err).Str("path", path).Msg("error reading config file, falling back to environment variables")
		}
	} else {
		logger.Debug().Str("path", v.ConfigFileUsed()).Msg("loaded config file")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyDefaults(&config)
	return config, nil
}

// applyDefaults sets default values for any config values not set from file or environment
func applyDefaults(config *Config) {
	if config.Sources.Format == "" {
		config.Sources.Format = "csv"
	}
	if config.Sources.DateColumn == "" {
		config.Sources.DateColumn = "Date"
	}
	if config.Sources.DateLayout == "" {
		config.Sources.DateLayout = "2006-01-02"
	}
	if config.Sources.Oil == "" {
		config.Sources.Oil = "Oil.csv"
	}
	if config.Sources.Petrol == "" {
		config.Sources.Petrol = "Petrol.csv"
	}
	if config.Sources.Plastic == "" {
		config.Sources.Plastic = "Plastic.csv"
	}
	if config.Sources.Tar == "" {
		config.Sources.Tar = "Tar.csv"
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}
