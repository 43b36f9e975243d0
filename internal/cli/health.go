package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show battery identity, capacity and wear",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bat, err := collector.FindBattery(a.cfg.Battery.SysfsRoot, a.cfg.Battery.Name)
			if err != nil {
				return err
			}
			h, err := bat.Health()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", bold("Battery %s", h.Name))
			fmt.Fprintf(w, "  Manufacturer:     %s\n", h.Manufacturer)
			fmt.Fprintf(w, "  Model:            %s\n", h.Model)
			fmt.Fprintf(w, "  Serial:           %s\n", h.Serial)
			fmt.Fprintf(w, "  Technology:       %s\n", h.Technology)
			fmt.Fprintf(w, "  Design capacity:  %.1f Wh\n", h.DesignWh())
			fmt.Fprintf(w, "  Current capacity: %.1f Wh\n", h.FullWh())
			if h.ChargeFullDesignUAH > 0 {
				fmt.Fprintf(w, "  Health:           %.1f%%\n", h.HealthPct())
			}
			fmt.Fprintf(w, "  Cycle count:      %d\n", h.CycleCount)
			return nil
		},
	}
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
