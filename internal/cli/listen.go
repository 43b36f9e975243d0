package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
)

func newListenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Record samples on logind sleep signals",
		Long: `Wait for systemd-logind PrepareForSleep signals on the system bus and record a
suspend or resume sample for each one. A delay inhibitor lock is held while
awake so the suspend sample is written before the machine sleeps.

Use this instead of a system-sleep hook, e.g. from a systemd service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bat, err := collector.FindBattery(a.cfg.Battery.SysfsRoot, a.cfg.Battery.Name)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			mon, err := collector.NewSleepMonitor(a.listenLog)
			if err != nil {
				return err
			}
			defer mon.Close()

			a.log.Info("listening for sleep signals", "battery", bat.Name, "db", a.cfg.Storage.DBPath)
			for {
				t, err := mon.Next(ctx)
				if errors.Is(err, context.Canceled) {
					a.log.Info("shutting down")
					return nil
				}
				if err != nil {
					return err
				}

				a.listenLog.Info("sleep transition", "event", t.Event())
				if err := a.sample(store, bat, t.Event()); err != nil {
					a.log.Error("record sample", "event", t.Event(), "err", err)
				}

				switch t {
				case collector.TransitionSuspend:
					mon.Release()
				case collector.TransitionResume:
					if err := mon.Inhibit(); err != nil {
						a.log.Warn("re-take inhibitor lock", "err", err)
					}
				}
			}
		},
	}
}
