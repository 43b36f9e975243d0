package report

import (
	"fmt"

	"github.com/cptspacemanspiff/batterylog/internal/collector"
)

// Pairing modes.
const (
	PairingTimeline   = "timeline"
	PairingPositional = "positional"
)

// timelineWindow is how many timeline rows are scanned per requested pair.
// Two rows make a clean pair; the slack absorbs missed hooks.
const timelineWindow = 4

// Source is the read side of the battery log.
type Source interface {
	LatestEntries(event string, limit int) ([]collector.LogEntry, error)
	RecentSleepEntries(limit int) ([]collector.LogEntry, error)
}

// Pair is one sleep: a suspend entry and the resume that ended it.
type Pair struct {
	Suspend collector.LogEntry
	Resume  collector.LogEntry
}

// FetchPairs reads up to n sleeps from src, newest first, using the given
// pairing mode. An empty mode means timeline pairing.
func FetchPairs(src Source, pairing string, n int) ([]Pair, error) {
	switch pairing {
	case PairingTimeline, "":
		entries, err := src.RecentSleepEntries(n * timelineWindow)
		if err != nil {
			return nil, fmt.Errorf("read sleep timeline: %w", err)
		}
		return PairTimeline(entries, n), nil
	case PairingPositional:
		resumes, err := src.LatestEntries(collector.EventResume, n)
		if err != nil {
			return nil, fmt.Errorf("read resumes: %w", err)
		}
		suspends, err := src.LatestEntries(collector.EventSuspend, n)
		if err != nil {
			return nil, fmt.Errorf("read suspends: %w", err)
		}
		return PairPositional(resumes, suspends), nil
	default:
		return nil, fmt.Errorf("unknown pairing mode %q", pairing)
	}
}

// PairTimeline pairs each resume with the entry directly before it in time
// when that entry is a suspend. entries must be newest first. Resumes without
// a preceding suspend, and suspends without a following resume, are skipped.
func PairTimeline(entries []collector.LogEntry, limit int) []Pair {
	var pairs []Pair
	for i := 0; i+1 < len(entries) && len(pairs) < limit; i++ {
		newer, older := entries[i], entries[i+1]
		if newer.Event == collector.EventResume && older.Event == collector.EventSuspend {
			pairs = append(pairs, Pair{Suspend: older, Resume: newer})
			i++
		}
	}
	return pairs
}

// PairPositional pairs the i-th newest resume with the i-th newest suspend.
// It assumes events strictly alternate; a missed hook shifts every later pair.
func PairPositional(resumes, suspends []collector.LogEntry) []Pair {
	n := min(len(resumes), len(suspends))
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{Suspend: suspends[i], Resume: resumes[i]})
	}
	return pairs
}
