package cmdutil

import (
	"errors"
	"strings"

	"github.com/ryan-gang/outreach-send/internal/config"
	"github.com/ryan-gang/outreach-send/internal/util"
	"github.com/spf13/cobra"
)

// EnvFile returns the dotenv path selected with --env-file
func EnvFile(cmd *cobra.Command) string {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return config.DefaultEnvFile
	}
	return envFile
}

// LoadConfigFromFlags loads configuration using the env-file flag from the command
func LoadConfigFromFlags(cmd *cobra.Command) (config.ConfigProvider, error) {
	return config.Load(EnvFile(cmd))
}

// LoadConfigOrReport loads configuration and prints what is wrong if it fails
func LoadConfigOrReport(cmd *cobra.Command) config.ConfigProvider {
	cfg, err := LoadConfigFromFlags(cmd)
	if err != nil {
		ReportConfigError(err)
		return nil
	}
	return cfg
}

// ReportConfigError prints a configuration failure in the standard format
func ReportConfigError(err error) {
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		util.LogError(util.ConfigError, "loading configuration", err)
		return
	}
	if len(cfgErr.Missing) > 0 {
		util.LogErrorf(util.ConfigError, "loading configuration", "missing required settings: %s", strings.Join(cfgErr.Missing, ", "))
	}
	if cfgErr.Path != "" {
		util.LogErrorf(util.FileError, "checking input", "excel file not found: %s", cfgErr.Path)
	}
	if cfgErr.Err != nil {
		util.LogError(util.ConfigError, "loading configuration", cfgErr.Err)
	}
}
