package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpgradeCmd(a *app) *cobra.Command {
	var trusted bool
	cmd := &cobra.Command{
		Use:   "upgrade [file]",
		Short: "Print a document upgraded to the latest version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := a.newUpgrader(nil).Process(inputValue(markup, trusted))
			if out.Trusted {
				a.logger.Debug("Output is trusted markup")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&trusted, "trusted", false, "treat the input as already sanitized markup")
	return cmd
}
