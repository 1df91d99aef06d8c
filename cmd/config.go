package cmd

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PORTGRAB"

var configKeys = []string{"ports", "timeout", "threads", "output", "table", "reasons", "verbose"}

var config *viper.Viper
var cfgFile string
var configErr error

// settings is the resolved run configuration: flags override PORTGRAB_*
// environment variables, which override the config file, which overrides
// flag defaults.
type settings struct {
	Ports   string
	Timeout time.Duration
	Threads int
	Output  string
	Table   bool
	Reasons bool
	Verbose bool
}

// newConfig returns a viper instance with every config key bound to its flag.
func newConfig(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	for _, key := range configKeys {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			log.Warnf("Failed to bind %s flag: %s", key, err)
		}
	}
	return v
}

func initConfig() {
	configErr = nil

	if cfgFile != "" {
		config.SetConfigFile(cfgFile)
	} else {
		config.AddConfigPath(".")
		config.SetConfigType("yaml")
		config.SetConfigName("portgrab")
	}

	config.SetEnvPrefix(envPrefix)
	config.AutomaticEnv()

	if err := config.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			configErr = fmt.Errorf("failed to read config: %w", err)
		}
		return
	}
	log.Debugf("Using config file: %s", config.ConfigFileUsed())
}

func loadSettings() (settings, error) {

	cfg := settings{
		Ports:   config.GetString("ports"),
		Threads: config.GetInt("threads"),
		Output:  config.GetString("output"),
		Table:   config.GetBool("table"),
		Reasons: config.GetBool("reasons"),
		Verbose: config.GetBool("verbose"),
	}

	seconds := config.GetFloat64("timeout")
	if seconds <= 0 {
		return cfg, fmt.Errorf("timeout must be positive, got %v", seconds)
	}
	cfg.Timeout = time.Duration(seconds * float64(time.Second))

	if cfg.Threads < 1 {
		return cfg, fmt.Errorf("threads must be at least 1, got %d", cfg.Threads)
	}

	return cfg, nil
}
