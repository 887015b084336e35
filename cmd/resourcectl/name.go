package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/resources/naming"
	"github.com/tailored-agentic-units/resources/resource"
)

var errNoName = errors.New("cannot build name")

func newNameCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Parse and build resource names",
		Long: `The name commands take either a path template such as
"/organizations/:org/projects/:slug" or a configured resource kind, whose
template is read from the config.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "parse TEMPLATE|KIND NAME_OR_URL",
			Short: "Parse a resource name or URL against a template",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				codec, err := opts.codec(args[0])
				if err != nil {
					return err
				}
				return opts.write(cmd.OutOrStdout(), codec.ParseName(args[1]))
			},
		},
		&cobra.Command{
			Use:   "build TEMPLATE|KIND KEY=VALUE...",
			Short: "Build a resource name from template parameters",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				codec, err := opts.codec(args[0])
				if err != nil {
					return err
				}

				params := make(map[string]string, len(args)-1)
				for _, arg := range args[1:] {
					key, value, ok := strings.Cut(arg, "=")
					if !ok || key == "" {
						return fmt.Errorf("invalid parameter %q: expected KEY=VALUE", arg)
					}
					params[key] = value
				}

				name, ok := codec.BuildName(params)
				if !ok {
					return fmt.Errorf("%w: %s requires %s", errNoName, codec.Template(), strings.Join(codec.Params(), ", "))
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
				return err
			},
		},
	)

	return cmd
}

// codec resolves a template argument. Arguments without a path separator
// name a configured resource kind.
func (o *options) codec(arg string) (*naming.Codec, error) {
	if strings.Contains(arg, "/") {
		return naming.New(arg)
	}

	kind, err := resource.Lookup(arg)
	if err != nil {
		return nil, err
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	rc, ok := cfg.Resource(kind)
	if !ok {
		return nil, fmt.Errorf("resource %s is not configured", kind)
	}
	return naming.New(rc.Template)
}
