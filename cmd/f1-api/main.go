// Command f1-api serves the F1 dashboard data API: a read-through cache
// in front of the standings and session providers.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/f1dash/f1-data-service/pkg/config"
)

const envPrefix = "F1API"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "f1-api",
	Short: "Caching data backend for the F1 dashboard",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.Default()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./f1-api.yml)")

	rootCmd.PersistentFlags().String("listen", defaults.ListenAddr,
		"HTTP listen address")
	rootCmd.PersistentFlags().String("redis", defaults.RedisAddr,
		"Redis address of the shared cache store")
	rootCmd.PersistentFlags().Int("redis-db", defaults.RedisDB,
		"Redis database number")
	rootCmd.PersistentFlags().String("redis-password", defaults.RedisPassword,
		"Redis password")
	rootCmd.PersistentFlags().String("standings-url", defaults.StandingsBaseURL,
		"Base URL of the standings provider")
	rootCmd.PersistentFlags().String("sessions-url", defaults.SessionsBaseURL,
		"Base URL of the schedule/session provider")
	rootCmd.PersistentFlags().Int("upstream-timeout", defaults.UpstreamTimeoutSeconds,
		"Upstream request timeout in seconds")
	rootCmd.PersistentFlags().String("log-level", defaults.LogLevel,
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-pretty", defaults.LogPretty,
		"Human-readable console logs instead of JSON")

	rootCmd.AddCommand(newServeCmd())
}

// initConfig reads in config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("f1-api")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// bindFlags binds each cobra flag to its associated viper configuration
// (config file and environment variable).
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			_ = cmd.Flags().Set(f.Name, v.GetString(f.Name))
		}
	})
}

// resolveConfig assembles the runtime configuration from viper.
func resolveConfig() config.Config {
	cfg := config.Default()
	if v := viper.GetString("listen"); v != "" {
		cfg.ListenAddr = v
	}
	if v := viper.GetString("redis"); v != "" {
		cfg.RedisAddr = v
	}
	cfg.RedisDB = viper.GetInt("redis-db")
	cfg.RedisPassword = viper.GetString("redis-password")
	if v := viper.GetString("standings-url"); v != "" {
		cfg.StandingsBaseURL = v
	}
	if v := viper.GetString("sessions-url"); v != "" {
		cfg.SessionsBaseURL = v
	}
	if v := viper.GetInt("upstream-timeout"); v > 0 {
		cfg.UpstreamTimeoutSeconds = v
	}
	if v := viper.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogPretty = viper.GetBool("log-pretty")
	return cfg
}
