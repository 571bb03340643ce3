package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendant/content-model/pkg/contentmodel"
)

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	var props []string

	cmd := &cobra.Command{
		Use:   "get <type> <path>",
		Short: "Resolve an attribute path on a fresh instance of a type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, _, err := buildRegistry(cmd)
			if err != nil {
				return err
			}

			t, ok := reg.Lookup(args[0])
			if !ok {
				return &contentmodel.TypeError{TypeID: args[0], Op: "get", Err: contentmodel.ErrTypeNotFound}
			}

			initial, err := parseProps(props)
			if err != nil {
				return err
			}

			value := t.Init(initial).Get(args[1])
			out, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to encode value: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&props, "prop", "p", nil, "initial attribute as key=value (value parsed as JSON)")
	return cmd
}
