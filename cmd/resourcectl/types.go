package main

import (
	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/resources/resource"
)

type actionType struct {
	Descriptor string `json:"descriptor" yaml:"descriptor"`
	Type       string `json:"type" yaml:"type"`
}

func newTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types KIND",
		Short: "List the lifecycle action types of a resource kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := resource.Lookup(args[0])
			if err != nil {
				return err
			}

			types := resource.BuildActionTypes(kind)
			out := make([]actionType, 0, types.Len())
			for _, descriptor := range types.Descriptors() {
				id, _ := types.Get(descriptor)
				out = append(out, actionType{Descriptor: descriptor.String(), Type: id})
			}
			return opts.write(cmd.OutOrStdout(), out)
		},
	}
}
