package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/runtime"
	"github.com/tailored-agentic-units/resources/transport"
)

func newReplayCmd(opts *options) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a transport event log and print the resulting state",
		Long: `Replay decodes a YAML or JSON transport event log, validates it against the
event log schema, dispatches every event through the configured routers and
reducers, and prints the final state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read event log: %w", err)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// Replays never reach a backend.
			cfg.Transport.BaseURL = ""

			logger, flush, err := opts.setupLogging()
			if err != nil {
				return err
			}
			defer flush()

			rt, err := runtime.New(cmd.Context(), cfg, runtime.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("failed to create runtime: %w", err)
			}
			defer rt.Shutdown(5 * time.Second)

			if err := replay(cmd, rt, data); err != nil {
				return err
			}

			if kind == "" {
				return opts.write(cmd.OutOrStdout(), rt.State())
			}

			k, err := resource.Lookup(kind)
			if err != nil {
				return err
			}
			selectors, err := rt.Selectors(k)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), selectors.List(rt.State()))
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Print only the entries of this resource kind")
	return cmd
}

// replay dispatches every event of an encoded log in order.
func replay(cmd *cobra.Command, rt *runtime.Runtime, data []byte) error {
	actions, err := transport.DecodeLog(data)
	if err != nil {
		return fmt.Errorf("failed to decode event log: %w", err)
	}

	for i, action := range actions {
		if err := rt.Dispatch(cmd.Context(), action); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}
