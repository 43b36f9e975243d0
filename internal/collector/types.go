package collector

// LogEntry is one row of the battery log, sampled at a power event.
// Energy fields are µAh×µV and power fields are µA×µV; divide by 1e12 for Wh and W.
type LogEntry struct {
	Timestamp        int64  `json:"timestamp"`
	BatteryName      string `json:"battery_name"`
	Event            string `json:"event"` // "suspend", "resume", or any other label
	CycleCount       int64  `json:"cycle_count"`
	ChargeNow        int64  `json:"charge_now"`
	CurrentNow       int64  `json:"current_now"`
	VoltageNow       int64  `json:"voltage_now"`
	VoltageMinDesign int64  `json:"voltage_min_design"`
	EnergyNow        int64  `json:"energy_now"`
	EnergyMin        int64  `json:"energy_min"`
	PowerNow         int64  `json:"power_now"`
	PowerMin         int64  `json:"power_min"`
}

// Counters holds the raw sysfs readings a LogEntry is derived from.
type Counters struct {
	CycleCount       int64
	ChargeNow        int64 // µAh
	CurrentNow       int64 // µA
	VoltageNow       int64 // µV
	VoltageMinDesign int64 // µV
}

// BatteryHealth holds static battery identity and capacity info.
type BatteryHealth struct {
	Name                string `json:"name"`
	Manufacturer        string `json:"manufacturer"`
	Model               string `json:"model"`
	Serial              string `json:"serial"`
	Technology          string `json:"technology"`
	CycleCount          int64  `json:"cycle_count"`
	ChargeFullDesignUAH int64  `json:"charge_full_design_uah"`
	ChargeFullUAH       int64  `json:"charge_full_uah"`
	VoltageMinDesignUV  int64  `json:"voltage_min_design_uv"`
}

// Event labels written by the hook and listener front-ends.
const (
	EventSuspend = "suspend"
	EventResume  = "resume"
)
