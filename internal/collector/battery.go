package collector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNoBattery is returned when no battery device exists under the sysfs root.
var ErrNoBattery = errors.New("no battery found")

// Battery is a power_supply device directory in sysfs.
type Battery struct {
	Name string // e.g. "BAT0"
	Dir  string
}

// PowerSupplyDir returns the power_supply class directory under a sysfs root.
func PowerSupplyDir(sysfsRoot string) string {
	return filepath.Join(sysfsRoot, "class/power_supply")
}

// FindBattery locates the battery under sysfsRoot. An empty name selects the
// first BAT* device; only a single battery is supported.
func FindBattery(sysfsRoot, name string) (*Battery, error) {
	dir := PowerSupplyDir(sysfsRoot)
	if name != "" {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%s: %w", name, ErrNoBattery)
			}
			return nil, fmt.Errorf("stat battery: %w", err)
		}
		return &Battery{Name: name, Dir: path}, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "BAT*"))
	if err != nil {
		return nil, fmt.Errorf("glob battery: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrNoBattery
	}
	return &Battery{Name: filepath.Base(matches[0]), Dir: matches[0]}, nil
}

// ReadCounters reads the raw counters sampled at each event.
func (b *Battery) ReadCounters() (Counters, error) {
	var c Counters
	fields := []struct {
		file string
		dst  *int64
	}{
		{"cycle_count", &c.CycleCount},
		{"charge_now", &c.ChargeNow},
		{"current_now", &c.CurrentNow},
		{"voltage_now", &c.VoltageNow},
		{"voltage_min_design", &c.VoltageMinDesign},
	}
	for _, f := range fields {
		v, err := readIntFile(filepath.Join(b.Dir, f.file))
		if err != nil {
			return Counters{}, fmt.Errorf("read %s: %w", f.file, err)
		}
		*f.dst = v
	}
	return c, nil
}

// ChargeFull reads the last full charge in µAh.
func (b *Battery) ChargeFull() (int64, error) {
	v, err := readIntFile(filepath.Join(b.Dir, "charge_full"))
	if err != nil {
		return 0, fmt.Errorf("read charge_full: %w", err)
	}
	return v, nil
}

// Sample reads the battery counters and builds the log entry for event.
func (b *Battery) Sample(event string, now time.Time) (*LogEntry, error) {
	c, err := b.ReadCounters()
	if err != nil {
		return nil, err
	}
	e := c.Entry(now.Unix(), b.Name, event)
	return &e, nil
}

// Entry derives energy and power products from the counters. "now" values use
// the instantaneous voltage, "min" values the design minimum (what UPower uses).
func (c Counters) Entry(ts int64, name, event string) LogEntry {
	return LogEntry{
		Timestamp:        ts,
		BatteryName:      name,
		Event:            event,
		CycleCount:       c.CycleCount,
		ChargeNow:        c.ChargeNow,
		CurrentNow:       c.CurrentNow,
		VoltageNow:       c.VoltageNow,
		VoltageMinDesign: c.VoltageMinDesign,
		EnergyNow:        c.ChargeNow * c.VoltageNow,
		EnergyMin:        c.ChargeNow * c.VoltageMinDesign,
		PowerNow:         c.CurrentNow * c.VoltageNow,
		PowerMin:         c.CurrentNow * c.VoltageMinDesign,
	}
}

func readIntFile(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
}
