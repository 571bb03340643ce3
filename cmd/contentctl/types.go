package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTypesCommand creates the types command
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the types declared by the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, _, err := buildRegistry(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tATTRIBUTE\tKIND\tTAG\tDEFAULT")
			for _, t := range reg.Types() {
				attrs := t.Attributes()
				if len(attrs) == 0 {
					fmt.Fprintf(w, "%s\t-\t-\t-\t-\n", t.ID())
					continue
				}
				for _, a := range attrs {
					def := "-"
					if a.HasDefault {
						raw, err := json.Marshal(a.Default)
						if err != nil {
							return fmt.Errorf("failed to encode default of %s.%s: %w", t.ID(), a.Name, err)
						}
						def = string(raw)
					}
					tag := a.TypeTag
					if tag == "" {
						tag = "-"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID(), a.Name, a.Kind, tag, def)
				}
			}
			return w.Flush()
		},
	}
}

// parseProps turns key=value pairs into instance props. Values are decoded
// as JSON when possible and kept as strings otherwise.
func parseProps(pairs []string) (map[string]any, error) {
	props := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid prop %q: expected key=value", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		props[key] = v
	}
	return props, nil
}
