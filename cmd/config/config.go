package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-tagstore/pkg/service"
	"github.com/mattsolo1/grove-tagstore/pkg/storage"
)

var cfgFile string

// Configuration keys.
const (
	KeyDataDir     = "data_dir"
	KeyBackend     = "backend"
	KeySettingsKey = "settings_key"
	KeyProjectKey  = "project_key"
	KeyLogLevel    = "log_level"
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "tagstore")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TAGSTORE")
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			logrus.WithError(err).Warn("could not read config file")
		}
	}
}

// SetDefaults registers the default for every configuration key.
func SetDefaults(v *viper.Viper) {
	home, _ := os.UserHomeDir()
	v.SetDefault(KeyDataDir, filepath.Join(home, ".local", "share", "tagstore"))
	v.SetDefault(KeyBackend, string(storage.BackendFS))
	v.SetDefault(KeySettingsKey, service.DefaultSettingsKey)
	v.SetDefault(KeyProjectKey, service.DefaultProjectKey)
	v.SetDefault(KeyLogLevel, "warn")
}

// ServiceConfig reads the service configuration from v.
func ServiceConfig(v *viper.Viper) *service.Config {
	return &service.Config{
		DataDir:     v.GetString(KeyDataDir),
		Backend:     storage.Backend(v.GetString(KeyBackend)),
		SettingsKey: v.GetString(KeySettingsKey),
		ProjectKey:  v.GetString(KeyProjectKey),
	}
}

// NewLogger builds the stderr logger at the configured level.
func NewLogger(v *viper.Viper) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	logger.SetLevel(level)
	return logger, nil
}

func InitService(logger *logrus.Logger) (*service.Service, error) {
	svc, err := service.New(ServiceConfig(viper.GetViper()), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize service: %w", err)
	}
	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tagstore/config.yaml)")
	cmd.PersistentFlags().String("data-dir", "", "directory holding the documents")
	cmd.PersistentFlags().String("backend", "", "storage backend (fs, sqlite)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag(KeyDataDir, cmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag(KeyBackend, cmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag(KeyLogLevel, cmd.PersistentFlags().Lookup("log-level"))
}
