package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
)

// The log is append-only: DB exposes no way to update or delete rows.
const schema = `
CREATE TABLE IF NOT EXISTS log (
	time INTEGER NOT NULL,
	name TEXT NOT NULL,
	event TEXT NOT NULL,
	cycle_count INTEGER NOT NULL,
	charge_now INTEGER NOT NULL,
	current_now INTEGER NOT NULL,
	voltage_now INTEGER NOT NULL,
	voltage_min_design INTEGER NOT NULL,
	energy_now INTEGER NOT NULL,
	energy_min INTEGER NOT NULL,
	power_now INTEGER NOT NULL,
	power_min INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_log_event_time ON log(event, time);
CREATE INDEX IF NOT EXISTS idx_log_time ON log(time);
`

const logColumns = "time, name, event, cycle_count, charge_now, current_now, voltage_now, voltage_min_design, energy_now, energy_min, power_now, power_min"

// DB wraps the SQLite battery log.
type DB struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// InsertLogEntry appends one entry to the log.
func (d *DB) InsertLogEntry(e collector.LogEntry) error {
	_, err := d.db.Exec(
		"INSERT INTO log ("+logColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.Timestamp, e.BatteryName, e.Event, e.CycleCount,
		e.ChargeNow, e.CurrentNow, e.VoltageNow, e.VoltageMinDesign,
		e.EnergyNow, e.EnergyMin, e.PowerNow, e.PowerMin,
	)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// LatestEntries returns up to limit entries with the given event, newest first.
func (d *DB) LatestEntries(event string, limit int) ([]collector.LogEntry, error) {
	return d.query(
		"SELECT "+logColumns+" FROM log WHERE event = ? ORDER BY time DESC, rowid DESC LIMIT ?",
		event, limit,
	)
}

// RecentSleepEntries returns up to limit suspend and resume entries merged
// into one timeline, newest first.
func (d *DB) RecentSleepEntries(limit int) ([]collector.LogEntry, error) {
	return d.query(
		"SELECT "+logColumns+" FROM log WHERE event IN (?, ?) ORDER BY time DESC, rowid DESC LIMIT ?",
		collector.EventSuspend, collector.EventResume, limit,
	)
}

func (d *DB) query(q string, args ...any) ([]collector.LogEntry, error) {
	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query log: %w", err)
	}
	defer rows.Close()
	var entries []collector.LogEntry
	for rows.Next() {
		var e collector.LogEntry
		if err := rows.Scan(
			&e.Timestamp, &e.BatteryName, &e.Event, &e.CycleCount,
			&e.ChargeNow, &e.CurrentNow, &e.VoltageNow, &e.VoltageMinDesign,
			&e.EnergyNow, &e.EnergyMin, &e.PowerNow, &e.PowerMin,
		); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
