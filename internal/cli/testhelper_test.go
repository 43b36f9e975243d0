package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
	"github.com/cptspacemanspiff/batterylog/internal/storage"
)

// testEnv is a fake sysfs tree plus a config file pointing at it and at a
// database under the same temp dir.
type testEnv struct {
	sysfsRoot string
	cfgPath   string
	dbPath    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	oldNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = oldNoColor })

	dir := t.TempDir()
	env := &testEnv{
		sysfsRoot: filepath.Join(dir, "sys"),
		cfgPath:   filepath.Join(dir, "config.toml"),
		dbPath:    filepath.Join(dir, "data", "batterylog.db"),
	}
	require.NoError(t, os.MkdirAll(env.sysfsRoot, 0o755))

	contents := fmt.Sprintf("[storage]\ndb_path = %q\n\n[battery]\nsysfs_root = %q\n", env.dbPath, env.sysfsRoot)
	require.NoError(t, os.WriteFile(env.cfgPath, []byte(contents), 0o644))
	return env
}

func (e *testEnv) writeBattery(t *testing.T, name string) {
	t.Helper()

	dir := filepath.Join(e.sysfsRoot, "class/power_supply", name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	attrs := map[string]string{
		"cycle_count":        "212",
		"charge_now":         "4000000",
		"current_now":        "350000",
		"voltage_now":        "12500000",
		"voltage_min_design": "12000000",
		"charge_full":        "4166667",
		"uevent": "POWER_SUPPLY_NAME=" + name + "\n" +
			"POWER_SUPPLY_MANUFACTURER=SMP\n" +
			"POWER_SUPPLY_MODEL_NAME=5B10W13930\n" +
			"POWER_SUPPLY_TECHNOLOGY=Li-poly\n" +
			"POWER_SUPPLY_CYCLE_COUNT=212\n" +
			"POWER_SUPPLY_CHARGE_FULL_DESIGN=5000000\n" +
			"POWER_SUPPLY_CHARGE_FULL=4500000\n" +
			"POWER_SUPPLY_VOLTAGE_MIN_DESIGN=12000000",
	}
	for file, v := range attrs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(v+"\n"), 0o644))
	}
}

// run executes the root command with the env's config and returns combined output.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--config", e.cfgPath}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

func (e *testEnv) openStore(t *testing.T) *storage.DB {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(e.dbPath), 0o755))
	db, err := storage.Open(e.dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func (e *testEnv) seed(t *testing.T, entries ...collector.LogEntry) {
	t.Helper()

	db := e.openStore(t)
	for _, entry := range entries {
		require.NoError(t, db.InsertLogEntry(entry))
	}
}

func sleepEntry(ts int64, event string, energyMin int64) collector.LogEntry {
	return collector.LogEntry{
		Timestamp:        ts,
		BatteryName:      "BAT0",
		Event:            event,
		VoltageMinDesign: 12000000,
		EnergyMin:        energyMin,
	}
}

func appendConfig(t *testing.T, env *testEnv, contents string) {
	t.Helper()

	f, err := os.OpenFile(env.cfgPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(contents)
	require.NoError(t, err)
}

func writeAttr(t *testing.T, env *testEnv, battery, file, value string) {
	t.Helper()

	path := filepath.Join(env.sysfsRoot, "class/power_supply", battery, file)
	require.NoError(t, os.WriteFile(path, []byte(value+"\n"), 0o644))
}
