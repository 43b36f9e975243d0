package report

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPairs is returned when the log holds no complete suspend/resume pair.
	ErrNoPairs = errors.New("no suspend/resume pairs in log")
	// ErrZeroDuration is returned for a pair whose suspend and resume share a timestamp.
	ErrZeroDuration = errors.New("sleep has zero duration")
)

// Raw energy counters are µAh×µV; this converts them to Wh.
const microSquared = 1e12

// Sleep holds the drain statistics of one suspend/resume pair.
type Sleep struct {
	SuspendTime    int64   `json:"suspend_time"`
	ResumeTime     int64   `json:"resume_time"`
	Hours          float64 `json:"hours"`
	EnergyWh       float64 `json:"energy_wh"`
	PowerW         float64 `json:"power_w"`
	PercentPerHour float64 `json:"percent_per_hour"`
	PercentPerDay  float64 `json:"percent_per_day"`
	// Nil unless the battery drained during the sleep.
	HoursUntilEmpty *float64 `json:"hours_until_empty,omitempty"`
}

// Report is the summary of the most recent sleeps, newest first.
type Report struct {
	FullEnergyWh float64 `json:"full_energy_wh"`
	Limit        int     `json:"limit"`
	Sleeps       []Sleep `json:"sleeps"`
}

// Last returns the most recent sleep.
func (r *Report) Last() Sleep {
	return r.Sleeps[0]
}

// ChargeReader reports the battery's last full charge in µAh.
type ChargeReader interface {
	ChargeFull() (int64, error)
}

// Options control which sleeps are reported.
type Options struct {
	Sleeps  int
	Pairing string
}

// Generate reads the newest pairs from src and builds the report. The full
// charge is only read once at least one pair exists.
func Generate(src Source, battery ChargeReader, opts Options) (*Report, error) {
	pairs, err := FetchPairs(src, opts.Pairing, opts.Sleeps)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	chargeFull, err := battery.ChargeFull()
	if err != nil {
		return nil, err
	}
	return Build(pairs, chargeFull, opts.Sleeps)
}

// Build computes statistics for pairs, newest first. Full battery energy is
// derived once from chargeFull and the newest resume's design minimum voltage.
func Build(pairs []Pair, chargeFull int64, limit int) (*Report, error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	fullWh := FullEnergyWh(chargeFull, pairs[0].Resume.VoltageMinDesign)
	if fullWh <= 0 {
		return nil, fmt.Errorf("full battery energy is %.2f Wh (charge_full=%d)", fullWh, chargeFull)
	}

	r := &Report{FullEnergyWh: fullWh, Limit: limit}
	for _, p := range pairs {
		s, err := Compute(p, fullWh)
		if err != nil {
			return nil, err
		}
		r.Sleeps = append(r.Sleeps, s)
	}
	return r, nil
}

// FullEnergyWh is the energy of a full battery at minimum design voltage.
func FullEnergyWh(chargeFull, voltageMinDesign int64) float64 {
	return float64(chargeFull) / microSquared * float64(voltageMinDesign)
}

// Compute derives elapsed time, energy drained and drain rate for one pair.
// Energy uses the design-minimum voltage readings.
func Compute(p Pair, fullWh float64) (Sleep, error) {
	delta := p.Resume.Timestamp - p.Suspend.Timestamp
	if delta == 0 {
		return Sleep{}, fmt.Errorf("suspend at %d: %w", p.Suspend.Timestamp, ErrZeroDuration)
	}

	hours := float64(delta) / 3600
	energyWh := float64(p.Suspend.EnergyMin-p.Resume.EnergyMin) / microSquared
	powerW := energyWh / hours
	pctPerHour := 100 * powerW / fullWh

	s := Sleep{
		SuspendTime:    p.Suspend.Timestamp,
		ResumeTime:     p.Resume.Timestamp,
		Hours:          hours,
		EnergyWh:       energyWh,
		PowerW:         powerW,
		PercentPerHour: pctPerHour,
		PercentPerDay:  pctPerHour * 24,
	}
	if powerW > 0 {
		untilEmpty := float64(p.Resume.EnergyMin) / microSquared / powerW
		s.HoursUntilEmpty = &untilEmpty
	}
	return s, nil
}
