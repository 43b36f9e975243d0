package cli

import (
	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
)

func newHookCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hook <pre|post> [kind]",
		Short: "Record a sample from a systemd-sleep hook",
		Long: `Record a suspend or resume sample using the arguments systemd passes to
executables in /usr/lib/systemd/system-sleep/: "pre" logs a suspend, "post" a resume.

Example hook:
  #!/bin/sh
  exec /usr/bin/batterylog hook "$1" "$2"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind string
			if len(args) == 2 {
				kind = args[1]
			}
			event, err := collector.HookEvent(args[0], kind)
			if err != nil {
				return err
			}
			return a.record(cmd, event)
		},
	}
}
