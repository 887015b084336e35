// Command resourcectl inspects the resource-state layer offline: it replays
// recorded transport event logs into a store, classifies RPC method names,
// lists action types and parses or builds resource names.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tailored-agentic-units/resources/config"
	"github.com/tailored-agentic-units/resources/observability"
)

type options struct {
	configFile string
	verbose    bool
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "resourcectl",
		Short: "Inspect dashboard resource state offline",
		Long: `resourcectl replays recorded transport event logs through the resource
reducers and prints the resulting state. It also classifies RPC method
names, lists the action types of a resource kind, and parses or builds
resource names from path templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a YAML or JSON config file")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging to stderr")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output results in JSON format")

	cmd.AddCommand(
		newReplayCmd(opts),
		newClassifyCmd(opts),
		newTypesCmd(opts),
		newNameCmd(opts),
	)

	return cmd
}

// loadConfig returns the config file named by --config, or the defaults.
func (o *options) loadConfig() (*config.Config, error) {
	if o.configFile == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(o.configFile)
}

// setupLogging installs slog and zap default loggers at the level selected
// by --verbose, so the "slog" and "zap" observers named in the config write
// to stderr. It returns the slog logger for the hub.
func (o *options) setupLogging() (*slog.Logger, func(), error) {
	level := observability.LevelInfo
	if o.verbose {
		level = observability.LevelVerbose
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level.SlogLevel(),
	}))
	slog.SetDefault(logger)

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level.ZapLevel())
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	restore := zap.ReplaceGlobals(zapLogger)

	return logger, func() {
		_ = zapLogger.Sync()
		restore()
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
