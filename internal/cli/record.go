package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
	"github.com/cptspacemanspiff/batterylog/internal/storage"
)

// record samples the battery once and appends the entry for event.
// A machine without a battery is reported and treated as success so a
// sleep hook never fails.
func (a *app) record(cmd *cobra.Command, event string) error {
	bat, err := collector.FindBattery(a.cfg.Battery.SysfsRoot, a.cfg.Battery.Name)
	if errors.Is(err, collector.ErrNoBattery) {
		fmt.Fprintf(cmd.OutOrStdout(), "Sorry we couldn't find a battery in %s\n",
			collector.PowerSupplyDir(a.cfg.Battery.SysfsRoot))
		return nil
	}
	if err != nil {
		return err
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return a.sample(store, bat, event)
}

func (a *app) sample(store *storage.DB, bat *collector.Battery, event string) error {
	e, err := bat.Sample(event, a.now())
	if err != nil {
		return fmt.Errorf("sample %s: %w", bat.Name, err)
	}
	if err := store.InsertLogEntry(*e); err != nil {
		return err
	}
	a.sampleLog.Info("recorded",
		"event", e.Event,
		"battery", e.BatteryName,
		"cycle_count", e.CycleCount,
		"charge_now", e.ChargeNow,
		"energy_min", e.EnergyMin,
		"power_min", e.PowerMin)
	return nil
}
