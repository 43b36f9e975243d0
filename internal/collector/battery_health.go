package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Health reads battery identity and capacity info from the device's uevent.
func (b *Battery) Health() (*BatteryHealth, error) {
	data, err := os.ReadFile(filepath.Join(b.Dir, "uevent"))
	if err != nil {
		return nil, fmt.Errorf("read uevent: %w", err)
	}

	props := parseUevent(string(data))
	h := &BatteryHealth{
		Name:         b.Name,
		Manufacturer: props["POWER_SUPPLY_MANUFACTURER"],
		Model:        props["POWER_SUPPLY_MODEL_NAME"],
		Serial:       props["POWER_SUPPLY_SERIAL_NUMBER"],
		Technology:   props["POWER_SUPPLY_TECHNOLOGY"],
	}
	h.CycleCount, _ = strconv.ParseInt(props["POWER_SUPPLY_CYCLE_COUNT"], 10, 64)
	h.ChargeFullDesignUAH, _ = strconv.ParseInt(props["POWER_SUPPLY_CHARGE_FULL_DESIGN"], 10, 64)
	h.ChargeFullUAH, _ = strconv.ParseInt(props["POWER_SUPPLY_CHARGE_FULL"], 10, 64)
	h.VoltageMinDesignUV, _ = strconv.ParseInt(props["POWER_SUPPLY_VOLTAGE_MIN_DESIGN"], 10, 64)

	return h, nil
}

// DesignWh is the design capacity in Wh at minimum design voltage.
func (h *BatteryHealth) DesignWh() float64 {
	return chargeToWh(h.ChargeFullDesignUAH, h.VoltageMinDesignUV)
}

// FullWh is the current full capacity in Wh at minimum design voltage.
func (h *BatteryHealth) FullWh() float64 {
	return chargeToWh(h.ChargeFullUAH, h.VoltageMinDesignUV)
}

// HealthPct is the current full charge as a percentage of design, or 0 when
// the design capacity is unknown.
func (h *BatteryHealth) HealthPct() float64 {
	if h.ChargeFullDesignUAH <= 0 {
		return 0
	}
	return float64(h.ChargeFullUAH) / float64(h.ChargeFullDesignUAH) * 100
}

func chargeToWh(chargeUAH, voltageUV int64) float64 {
	return float64(chargeUAH) * float64(voltageUV) / 1e12
}

func parseUevent(data string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			props[k] = v
		}
	}
	return props
}
