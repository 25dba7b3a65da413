package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/config"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/flags"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/paths"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	// Set by initConfig so subcommands know where to save changes.
	configFileUsed string
)

// errRejected is returned after a rejected transaction has been rendered, so the
// process exits non-zero without printing the error twice.
var errRejected = errors.New("transaction rejected")

var rootCmd = &cobra.Command{
	Use:   "qnet",
	Short: "Ledger for a quantum entanglement network",
	Long: `qnet records the state of a quantum entanglement network: registered keys,
entanglement pairs, a bandwidth market and governance proposals.

Every transaction names its sender (--sender) and the clock value it executes
at (--height). Results are printed as text or, with --output json, as the
{success, value, error} envelope.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .qnet/config.yaml, then ~/.config/qnet/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "ledger data directory (default: ./.qnet)")
	rootCmd.PersistentFlags().StringP("sender", "s", "", "identity of the transaction sender")
	rootCmd.PersistentFlags().Uint64("height", 0, "clock value (block height) the transaction executes at")
	rootCmd.PersistentFlags().Bool("memory", false, "keep registries in memory for this invocation")
	rootCmd.PersistentFlags().Bool("debug", false, "write debug logs to $QNET_LOG (also QNET_DEBUG=1, level from QNET_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text or json")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	defaults := config.Defaults()
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("processor.queue_capacity", defaults.Processor.QueueCapacity)
	viper.SetDefault("processor.replay_window", defaults.Processor.ReplayWindow)
	viper.SetDefault("processor.cache_ttl", defaults.Processor.CacheTTL)
	viper.SetDefault("processor.slow_threshold", defaults.Processor.SlowThreshold)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	for name, enabled := range defaults.Flags {
		viper.SetDefault("flags."+name, enabled)
	}

	// QNET_PROCESSOR_QUEUE_CAPACITY, QNET_FLAGS_REPLAY_GUARD, ...
	viper.SetEnvPrefix("QNET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	defaultPath := paths.DataDirName + "/" + paths.ConfigFile
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		defaultPath = cfgFile
	} else {
		// Config lookup order:
		// 1. .qnet/config.yaml (current directory)
		// 2. ~/.config/qnet/config.yaml (user config)
		if _, err := os.Stat(defaultPath); err == nil {
			viper.SetConfigFile(defaultPath)
		} else if userPath := paths.UserConfigPath(); userPath != "" {
			viper.SetConfigFile(userPath)
		} else {
			viper.SetConfigFile(defaultPath)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// No config file found - create a default one
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	configFileUsed = viper.ConfigFileUsed()
	cfg = config.Defaults()
	_ = viper.Unmarshal(&cfg)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug || os.Getenv("QNET_DEBUG") != "" {
		logPath := os.Getenv("QNET_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "qnet")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		cobra.OnFinalize(cleanup)
		if name := os.Getenv("QNET_LOG_LEVEL"); name != "" {
			level, err := log.ParseLevel(name)
			if err != nil {
				return err
			}
			log.SetMinLevel(level)
		}
		log.Info(log.CatCLI, "qnet starting", "version", version, "config", configFileUsed, "command", cmd.CommandPath())
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", configFileUsed, err)
	}
	log.Debug(log.CatConfig, "configuration loaded",
		"data_dir", cfg.ResolvedDataDir(),
		"sqlite", cfg.FlagRegistry().Enabled(flags.FlagSQLitePersistence),
		"tracing", cfg.Tracing.Enabled,
	)
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
