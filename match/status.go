package match

import "strings"

// Status is the coarse lifecycle state of a match.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusOther      Status = "other"
)

// ParseStatus maps a provider short status code ("NS", "1H", "FT", ...) to a Status.
// Already-normalized values are accepted as well.
func ParseStatus(short string) Status {
	switch strings.ToUpper(strings.TrimSpace(short)) {
	case "NS", "TBD", "PST", "NOT_STARTED":
		return StatusNotStarted
	case "1H", "HT", "2H", "ET", "BT", "P", "LIVE", "INT", "IN_PROGRESS":
		return StatusInProgress
	case "FT", "AET", "PEN", "AWD", "WO", "FINISHED":
		return StatusFinished
	default:
		return StatusOther
	}
}

// Label returns a short human label for the status line.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "Live"
	case StatusFinished:
		return "Full time"
	default:
		return "—"
	}
}
