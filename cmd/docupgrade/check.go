package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cozy/docupgrade/model"
	"github.com/cozy/docupgrade/upgrade"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Exit with status 1 when a document is not up to date, 2 when it cannot be upgraded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var failure *upgrade.Event
			out := a.newUpgrader(func(e upgrade.Event) {
				if e.Err != nil {
					failure = &e
				}
			}).Process(model.Plain(markup))

			if failure != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "upgrade abandoned: version %s to %s: %v\n",
					failure.Declared, failure.Target, failure.Err)
				return &SilentExitError{Code: 2}
			}

			before := model.Parse(markup)
			after := model.Parse(out.String())
			path, changed := model.FindDiffStart(before.Body, after.Body)
			if !changed {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "up to date (version %s)\n",
					a.cfg.VersionMarker().Declared(after.Body))
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "outdated: version %s, first change at node %v\n",
				a.cfg.VersionMarker().Declared(before.Body), path)
			return &SilentExitError{Code: 1}
		},
	}
}
