package main

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// write renders v as YAML, or as indented JSON with --json.
func (o *options) write(w io.Writer, v any) error {
	if o.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
