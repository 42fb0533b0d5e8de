package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fliem/freesurfer-lgi/logger"
)

// envFile is loaded into the process environment if present in the working
// directory, without overriding variables already set.
const envFile = ".env"

// Load fills the fields the CLI left empty from the environment.
// A .env file in the working directory is read first (existing variables
// win), then viper resolves the individual settings.
func Load(cfg *Config) error {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.Warn("failed to load .env file", logger.ErrorFields("load_env", err))
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	_ = v.BindEnv("subjects_dir", EnvSubjectsDir)
	_ = v.BindEnv("license_key", EnvLicenseKey)
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_format", "LOG_FORMAT")

	if cfg.SubjectsDir == "" {
		cfg.SubjectsDir = v.GetString("subjects_dir")
	}
	if cfg.LicenseKey == "" {
		cfg.LicenseKey = v.GetString("license_key")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = v.GetString("log_level")
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = v.GetString("log_format")
	}
	return nil
}
