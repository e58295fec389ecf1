package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/curl-logger/internal/app"
	"github.com/oshokin/curl-logger/internal/config"
	"github.com/oshokin/curl-logger/internal/logger"
	"github.com/oshokin/curl-logger/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "curl-logger",
		Short: "Render HTTP requests as curl commands, or send them with curl logging.",
		Long: `Curl Logger turns HTTP request descriptions into copy-pasteable curl commands.

It can:
- Print the curl command for a request (format)
- Send a request and log its curl command (send)
- Write a default configuration file (config init)

Whether commands are logged while sending depends on the environment:
development and test log them, staging and production do not,
unless curl_logging_enabled says otherwise.`,
		Version:           version.Full(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmdFlags := rootCmd.PersistentFlags()

	rootCmdFlags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags.StringP(
		"environment",
		"e",
		"",
		"deployment environment: development, test, staging, production.")

	rootCmdFlags.String(
		"log-level",
		"",
		"logging verbosity: debug, info, warn, error.")

	rootCmdFlags.Bool(
		"curl-logging",
		false,
		"force curl logging on or off, regardless of the environment.")

	rootCmdFlags.String(
		"base-uri",
		"",
		"base URI relative request URIs are resolved against.")

	rootCmdFlags.String(
		"max-log-length",
		"",
		"maximum size of a logged command, for example: 64KB, 1MB.")

	rootCmdFlags.String(
		"timeout",
		"",
		"request timeout, for example: 30s, 1m.")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
	app.ConfigureCurlLogging(appConfig)

	return nil
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("environment"); flag != nil && flag.Changed {
		cfg.Environment, _ = flags.GetString("environment")
	}

	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flag := flags.Lookup("curl-logging"); flag != nil && flag.Changed {
		enabled, _ := flags.GetBool("curl-logging")
		cfg.CurlLoggingOverride = &enabled
	}

	if flag := flags.Lookup("base-uri"); flag != nil && flag.Changed {
		cfg.BaseURI, _ = flags.GetString("base-uri")
	}

	if flag := flags.Lookup("max-log-length"); flag != nil && flag.Changed {
		cfg.MaxLogLength, _ = flags.GetString("max-log-length")
	}

	if flag := flags.Lookup("timeout"); flag != nil && flag.Changed {
		cfg.Timeout, _ = flags.GetString("timeout")
	}

	return config.ValidateConfig(cfg)
}
