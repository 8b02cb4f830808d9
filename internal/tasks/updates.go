package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase; zero when unknown
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchPage Phase = iota
	FetchDetails
	ExportDone
)

func (p Phase) String() string {
	switch p {
	case FetchPage:
		return "fetch_page"
	case FetchDetails:
		return "fetch_details"
	case ExportDone:
		return "export_done"
	default:
		return ""
	}
}

func fetchPageUpdate(label string, page int, cursor string) ProgressUpdate {
	msg := fmt.Sprintf("Fetching %s page %d...", label, page)
	if cursor != "" {
		msg = fmt.Sprintf("Fetching %s page %d after %s...", label, page, cursor)
	}
	return ProgressUpdate{Phase: FetchPage, Step: page, Message: msg, Data: cursor}
}

func detailFetchedUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetched %s", id),
		Data:    id,
	}
}

func detailFailedUpdate(step, total int, id string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to fetch %s: %v", id, err),
		Data:    err,
	}
}

func exportCompletedUpdate(items, failed int) ProgressUpdate {
	msg := fmt.Sprintf("Collected %d items", items)
	if failed > 0 {
		msg = fmt.Sprintf("Collected %d items, %d details failed", items, failed)
	}
	return ProgressUpdate{Phase: ExportDone, Step: 1, Total: 1, Message: msg}
}
