package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/resources/classify"
)

type classification struct {
	Method   string `json:"method" yaml:"method"`
	Request  string `json:"request,omitempty" yaml:"request,omitempty"`
	Resource string `json:"resource,omitempty" yaml:"resource,omitempty"`
}

func classifyMethod(method string) classification {
	c := classification{Method: method}
	if request, ok := classify.RequestKindFromMethod(method); ok {
		c.Request = string(request)
	}
	if kind, ok := classify.ResourceKindFromMethod(method); ok {
		c.Resource = string(kind)
	}
	return c
}

func newClassifyCmd(opts *options) *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "classify METHOD...",
		Short: "Derive request and resource kinds from RPC method names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]classification, 0, len(args))
			for _, method := range args {
				results = append(results, classifyMethod(method))
			}

			if !table {
				return opts.write(cmd.OutOrStdout(), results)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tREQUEST\tRESOURCE")
			for _, c := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Method, dash(c.Request), dash(c.Resource))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Print an aligned table")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
