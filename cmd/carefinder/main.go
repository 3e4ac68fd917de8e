package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/carefinder/internal/config"
	logpkg "github.com/kailas-cloud/carefinder/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	env        string
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "carefinder",
		Short: "carefinder - mental-health service directory search",
		Long: `carefinder turns a free-text request for help into a ranked list of
mental-health services from the directory: vector ranking first, keyword
search when ranking is unavailable.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.env, "env", config.GetEnv(), "Environment: local|dev|docker|staging|prod")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default config/{env}.yaml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log level: debug|info|warn|error")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newQueryCmd(flags))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// load reads config and builds the logger for a command run.
func (f *rootFlags) load() (config.Config, *zap.Logger, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load(f.env)
	}
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if f.logLevel != "" {
		level = f.logLevel
	}
	logger, err := logpkg.NewLogger(f.env, level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
