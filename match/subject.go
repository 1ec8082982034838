package match

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Subject is the match a detail view is showing.
type Subject struct {
	ID         string `json:"id"`
	Status     Status `json:"status"`
	HomeTeamID int    `json:"home"`
	AwayTeamID int    `json:"away"`
	// Participants is the current roster composition (player ids), when known.
	Participants []int `json:"participants,omitempty"`
}

type subjectWire struct {
	ID           json.RawMessage `json:"id"`
	Status       string          `json:"status"`
	Home         int             `json:"home"`
	Away         int             `json:"away"`
	Participants []int           `json:"participants"`
}

// DecodeSubject parses a match header as sent by the REST API and the live
// feed. The id may be a JSON number or string; status is a provider short code
// and is left empty when the message does not carry one.
func DecodeSubject(data []byte) (Subject, error) {
	var w subjectWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Subject{}, err
	}
	var status Status
	if strings.TrimSpace(w.Status) != "" {
		status = ParseStatus(w.Status)
	}
	return Subject{
		ID:           strings.Trim(string(w.ID), `"`),
		Status:       status,
		HomeTeamID:   w.Home,
		AwayTeamID:   w.Away,
		Participants: w.Participants,
	}, nil
}

// Fingerprint summarizes the part of the subject's composition that data of
// kind k depends on. An empty string means it cannot be derived yet.
//
// lineups, when non-nil, supplies participants if the subject has none.
func Fingerprint(s Subject, k Kind, lineups *Lineups) string {
	switch k {
	case KindPlayerStats:
		ids := s.Participants
		if len(ids) == 0 {
			ids = lineups.PlayerIDs()
		}
		return joinSorted(ids)
	case KindStandings, KindPower:
		if s.HomeTeamID == 0 || s.AwayTeamID == 0 {
			return ""
		}
		return strconv.Itoa(s.HomeTeamID) + "," + strconv.Itoa(s.AwayTeamID)
	default:
		return ""
	}
}

func joinSorted(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
