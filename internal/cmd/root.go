package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"raspview/internal/config"
	"raspview/internal/logs"
)

var (
	cfgFile  string
	settings *config.Settings
	hook     *logs.ForwardHook
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "raspview",
	Short: "raspview - viewer for RASP extension logs",
	Long: `raspview displays the line-delimited JSON events written by the RASP
PHP extension as an HTML table, either served over HTTP or rendered once.`,
	SilenceUsage:      true,
	PersistentPreRunE: initialise,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

// initialise loads the config with the running command's flags bound over
// it, validates it and sets up logging.
func initialise(cmd *cobra.Command, args []string) error {
	bind(cmd.Flags().Lookup("log-level"), config.KeyLogLevel)
	bind(cmd.Flags().Lookup("file"), config.KeyLogFile)
	bind(cmd.Flags().Lookup("addr"), config.KeyListenAddr)

	s, err := config.InitConfig(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Validate(s); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	h, err := logs.InitLogrus(s.LogLevel, s.LogForwardURL)
	if err != nil {
		return err
	}
	if config.LogDirMissing(s) {
		logrus.Warnf("[config] directory of %s does not exist yet", s.LogFile)
	}

	settings, hook = s, h
	return nil
}

// bind lets a flag override a config key, but only when the flag was given.
func bind(flag *pflag.Flag, key string) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// flush stops log forwarding and waits for records still in flight.
func flush() {
	if hook != nil {
		hook.Close()
	}
}
