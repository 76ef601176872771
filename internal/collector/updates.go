package collector

import (
	"fmt"

	"chanlist/internal/models"
)

// ProgressUpdate represents a progress event during a collector run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ProbeExtractor Phase = iota
	TryStrategy
	CollectRecords
	DetailLookup
)

func (p Phase) String() string {
	switch p {
	case ProbeExtractor:
		return "probe_extractor"
	case TryStrategy:
		return "try_strategy"
	case CollectRecords:
		return "collect_records"
	case DetailLookup:
		return "detail_lookup"
	default:
		return ""
	}
}

func probeUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProbeExtractor,
		Step:    1,
		Total:   1,
		Message: "Checking extractor availability...",
	}
}

func probedUpdate(version string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProbeExtractor,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Using yt-dlp %s", version),
	}
}

func tryStrategyUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TryStrategy,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Trying strategy: %s...", step, total, name),
	}
}

func strategyFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TryStrategy,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func strategyEmptyUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TryStrategy,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s returned nothing", step, total, name),
	}
}

func recordsFoundUpdate(name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CollectRecords,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("✓ Found %d playlists via %s", count, name),
		Data:    count,
	}
}

func noRecordsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   CollectRecords,
		Step:    1,
		Total:   1,
		Message: "No playlists found",
	}
}

func detailLookupUpdate(step, total int, record models.PlaylistRecord) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DetailLookup,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching details: %s", step, total, record.URL),
	}
}

func detailFailedUpdate(step, total int, record models.PlaylistRecord, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DetailLookup,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, record.ID, err),
	}
}
