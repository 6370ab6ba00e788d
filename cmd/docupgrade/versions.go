package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the known versions and their upgrade steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			versions := a.registry.Versions()
			if len(versions) == 0 {
				_, err := fmt.Fprintln(out, "no migration configured")
				return err
			}
			for _, v := range versions {
				for _, step := range a.registry.Steps(v) {
					if _, err := fmt.Fprintf(out, "%s\t%s\n", v, step.Key); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}
