package search

import (
	"fmt"
	"time"
)

// Window is an immutable search time range [Start, End). Bisected halves are
// strictly increasing and non-overlapping at the midpoint.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Bisect splits the window at its time midpoint into two half-open windows.
// The split is time-based, not count-based; a pathological burst inside one
// half can still hit the page cap and will itself recurse.
func (w Window) Bisect() (Window, Window) {
	mid := w.End.Add(-w.Duration() / 2)
	return Window{Start: w.Start, End: mid}, Window{Start: mid, End: w.End}
}

// String renders the window for log lines.
func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.UTC().Format(time.RFC3339), w.End.UTC().Format(time.RFC3339))
}
