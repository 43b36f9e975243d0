package storage

import (
	"path/filepath"
	"testing"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	})

	return db
}

func testEntry(ts int64, event string, energyMin int64) collector.LogEntry {
	return collector.LogEntry{
		Timestamp:        ts,
		BatteryName:      "BAT0",
		Event:            event,
		CycleCount:       100,
		ChargeNow:        4000000,
		CurrentNow:       250000,
		VoltageNow:       12600000,
		VoltageMinDesign: 11550000,
		EnergyNow:        4000000 * 12600000,
		EnergyMin:        energyMin,
		PowerNow:         250000 * 12600000,
		PowerMin:         250000 * 11550000,
	}
}

func TestLogEntryRoundTrip(t *testing.T) {
	db := openTestDB(t)

	want := testEntry(1700000000, "suspend", 4000000*11550000)
	if err := db.InsertLogEntry(want); err != nil {
		t.Fatalf("InsertLogEntry() error = %v", err)
	}

	got, err := db.LatestEntries("suspend", 5)
	if err != nil {
		t.Fatalf("LatestEntries() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("LatestEntries() len = %d, want 1", len(got))
	}
	if got[0] != want {
		t.Fatalf("LatestEntries()[0] = %#v, want %#v", got[0], want)
	}
}

func TestLatestEntries_NewestFirstAndLimited(t *testing.T) {
	db := openTestDB(t)

	for _, ts := range []int64{10, 30, 20, 50, 40, 60} {
		if err := db.InsertLogEntry(testEntry(ts, "resume", ts)); err != nil {
			t.Fatalf("InsertLogEntry(%d) error = %v", ts, err)
		}
	}
	if err := db.InsertLogEntry(testEntry(100, "suspend", 0)); err != nil {
		t.Fatalf("InsertLogEntry(suspend) error = %v", err)
	}

	got, err := db.LatestEntries("resume", 5)
	if err != nil {
		t.Fatalf("LatestEntries() error = %v", err)
	}
	var ts []int64
	for _, e := range got {
		ts = append(ts, e.Timestamp)
	}
	want := []int64{60, 50, 40, 30, 20}
	if len(ts) != len(want) {
		t.Fatalf("LatestEntries() timestamps = %v, want %v", ts, want)
	}
	for i := range want {
		if ts[i] != want[i] {
			t.Fatalf("LatestEntries() timestamps = %v, want %v", ts, want)
		}
	}
}

func TestLatestEntries_Empty(t *testing.T) {
	db := openTestDB(t)

	got, err := db.LatestEntries("resume", 5)
	if err != nil {
		t.Fatalf("LatestEntries() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("LatestEntries() = %#v, want none", got)
	}
}

func TestRecentSleepEntries_MergedTimeline(t *testing.T) {
	db := openTestDB(t)

	inserts := []collector.LogEntry{
		testEntry(100, "suspend", 0),
		testEntry(200, "resume", 0),
		testEntry(250, "ac-plugged", 0),
		testEntry(300, "suspend", 0),
		testEntry(400, "resume", 0),
	}
	for _, e := range inserts {
		if err := db.InsertLogEntry(e); err != nil {
			t.Fatalf("InsertLogEntry() error = %v", err)
		}
	}

	got, err := db.RecentSleepEntries(3)
	if err != nil {
		t.Fatalf("RecentSleepEntries() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("RecentSleepEntries() len = %d, want 3", len(got))
	}
	wantTs := []int64{400, 300, 200}
	wantEvents := []string{"resume", "suspend", "resume"}
	for i := range got {
		if got[i].Timestamp != wantTs[i] || got[i].Event != wantEvents[i] {
			t.Fatalf("RecentSleepEntries()[%d] = %d/%s, want %d/%s", i, got[i].Timestamp, got[i].Event, wantTs[i], wantEvents[i])
		}
	}
}

func TestRecentSleepEntries_TiesKeepInsertionOrder(t *testing.T) {
	db := openTestDB(t)

	if err := db.InsertLogEntry(testEntry(100, "suspend", 0)); err != nil {
		t.Fatalf("InsertLogEntry() error = %v", err)
	}
	if err := db.InsertLogEntry(testEntry(100, "resume", 0)); err != nil {
		t.Fatalf("InsertLogEntry() error = %v", err)
	}

	got, err := db.RecentSleepEntries(10)
	if err != nil {
		t.Fatalf("RecentSleepEntries() error = %v", err)
	}
	if len(got) != 2 || got[0].Event != "resume" || got[1].Event != "suspend" {
		t.Fatalf("RecentSleepEntries() = %#v, want resume then suspend", got)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.InsertLogEntry(testEntry(1, "suspend", 0)); err != nil {
		t.Fatalf("InsertLogEntry() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer db.Close()
	got, err := db.LatestEntries("suspend", 5)
	if err != nil {
		t.Fatalf("LatestEntries() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("LatestEntries() len = %d, want 1 after reopen", len(got))
	}
}
