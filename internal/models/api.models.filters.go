package models

import "time"

// ReadingWindow enumerates the selectable history time windows.
type ReadingWindow string

const (
	WindowDay   ReadingWindow = "1d"
	WindowWeek  ReadingWindow = "7d"
	WindowMonth ReadingWindow = "30d"
)

// Duration returns the window length and whether the window is valid.
func (w ReadingWindow) Duration() (time.Duration, bool) {
	switch w {
	case WindowDay:
		return 24 * time.Hour, true
	case WindowWeek:
		return 7 * 24 * time.Hour, true
	case WindowMonth:
		return 30 * 24 * time.Hour, true
	}
	return 0, false
}

// ReadingFilters defines the available filter options for the history view.
// Limit, when positive, selects the N most recent rows instead of a time
// window.
type ReadingFilters struct {
	Window ReadingWindow `schema:"window"`
	Limit  int           `schema:"limit"`
}

// Normalize applies the defaults: window 1d, limit capped at 1000.
func (f *ReadingFilters) Normalize() {
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Limit > 1000 {
		f.Limit = 1000
	}
	if _, ok := f.Window.Duration(); !ok {
		f.Window = WindowDay
	}
}
