package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
	"github.com/cptspacemanspiff/batterylog/internal/report"
)

// lazyBattery locates the battery on first use, so an empty log fails with
// report.ErrNoPairs before sysfs is touched.
type lazyBattery struct {
	sysfsRoot string
	name      string
}

func (b lazyBattery) ChargeFull() (int64, error) {
	bat, err := collector.FindBattery(b.sysfsRoot, b.name)
	if err != nil {
		return 0, err
	}
	return bat.ChargeFull()
}

func (a *app) report(cmd *cobra.Command, jsonOut bool) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := report.Options{Sleeps: a.cfg.Report.Sleeps, Pairing: a.cfg.Report.Pairing}
	r, err := report.Generate(store, lazyBattery{a.cfg.Battery.SysfsRoot, a.cfg.Battery.Name}, opts)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	a.reportLog.Info("report built",
		"sleeps", len(r.Sleeps),
		"pairing", opts.Pairing,
		"full_energy_wh", fmt.Sprintf("%.2f", r.FullEnergyWh))

	if jsonOut {
		return report.WriteJSON(cmd.OutOrStdout(), r)
	}
	return report.WriteText(cmd.OutOrStdout(), r, a.location)
}
