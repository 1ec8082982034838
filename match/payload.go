package match

import (
	"encoding/json"
	"fmt"
)

// Payload is a partial bundle of match data, holding a value for some subset of
// kinds. A kind is present once set, even when its value is empty: an explicit
// empty value ("no lineups yet") is distinct from a kind that was never loaded.
//
// Payload values are never mutated in place; every With/Merge returns a copy.
type Payload struct {
	events      []Event
	lineups     *Lineups
	stats       []TeamStats
	standings   *Standings
	power       *HeadToHead
	playerStats PlayerStatsMap
	present     KindSet
}

// Has reports whether kind k is present.
func (p Payload) Has(k Kind) bool {
	return p.present.Has(k)
}

// Kinds returns the set of present kinds.
func (p Payload) Kinds() KindSet {
	return NewKindSet(p.present.Slice()...)
}

func (p Payload) with(k Kind) Payload {
	p.present = p.present.Add(k)
	return p
}

func (p Payload) WithEvents(v []Event) Payload {
	p.events = v
	return p.with(KindEvents)
}

func (p Payload) WithLineups(v *Lineups) Payload {
	p.lineups = v
	return p.with(KindLineups)
}

func (p Payload) WithStats(v []TeamStats) Payload {
	p.stats = v
	return p.with(KindStats)
}

func (p Payload) WithStandings(v *Standings) Payload {
	p.standings = v
	return p.with(KindStandings)
}

func (p Payload) WithPower(v *HeadToHead) Payload {
	p.power = v
	return p.with(KindPower)
}

func (p Payload) WithPlayerStats(v PlayerStatsMap) Payload {
	p.playerStats = v
	return p.with(KindPlayerStats)
}

func (p Payload) Events() []Event { return p.events }
func (p Payload) Lineups() *Lineups { return p.lineups }
func (p Payload) Stats() []TeamStats { return p.stats }
func (p Payload) Standings() *Standings { return p.standings }
func (p Payload) Power() *HeadToHead { return p.power }
func (p Payload) PlayerStats() PlayerStatsMap { return p.playerStats }

// Merge returns p overlaid with every kind present in o.
func (p Payload) Merge(o Payload) Payload {
	out := p
	for _, k := range o.present.Slice() {
		out = out.copyKind(o, k)
	}
	return out
}

// Only returns a payload restricted to the given kinds.
func (p Payload) Only(kinds KindSet) Payload {
	var out Payload
	for _, k := range p.present.Intersect(kinds).Slice() {
		out = out.copyKind(p, k)
	}
	return out
}

// Without returns a payload with the given kinds removed.
func (p Payload) Without(kinds KindSet) Payload {
	return p.Only(p.present.Minus(kinds))
}

func (p Payload) copyKind(src Payload, k Kind) Payload {
	switch k {
	case KindEvents:
		return p.WithEvents(src.events)
	case KindLineups:
		return p.WithLineups(src.lineups)
	case KindStats:
		return p.WithStats(src.stats)
	case KindStandings:
		return p.WithStandings(src.standings)
	case KindPower:
		return p.WithPower(src.power)
	case KindPlayerStats:
		return p.WithPlayerStats(src.playerStats)
	}
	return p
}

// IsEmptyKind reports whether kind k is absent or present with an empty value.
func (p Payload) IsEmptyKind(k Kind) bool {
	if !p.Has(k) {
		return true
	}
	switch k {
	case KindEvents:
		return len(p.events) == 0
	case KindLineups:
		return p.lineups == nil
	case KindStats:
		return len(p.stats) == 0
	case KindStandings:
		return p.standings == nil || len(p.standings.Rows) == 0
	case KindPower:
		return p.power == nil
	case KindPlayerStats:
		return len(p.playerStats) == 0
	}
	return true
}

// KindJSON encodes the value of a present kind.
func (p Payload) KindJSON(k Kind) (json.RawMessage, error) {
	if !p.Has(k) {
		return nil, fmt.Errorf("kind %s not present", k)
	}
	var v any
	switch k {
	case KindEvents:
		v = p.events
	case KindLineups:
		v = p.lineups
	case KindStats:
		v = p.stats
	case KindStandings:
		v = p.standings
	case KindPower:
		v = p.power
	case KindPlayerStats:
		v = p.playerStats
	default:
		return nil, fmt.Errorf("unknown kind %q", k)
	}
	return json.Marshal(v)
}

// SetKindJSON decodes raw as the value of kind k and returns the updated payload.
// A JSON null marks the kind present with an empty value.
func (p Payload) SetKindJSON(k Kind, raw json.RawMessage) (Payload, error) {
	var err error
	switch k {
	case KindEvents:
		var v []Event
		err = json.Unmarshal(raw, &v)
		p = p.WithEvents(v)
	case KindLineups:
		var v *Lineups
		err = json.Unmarshal(raw, &v)
		p = p.WithLineups(v)
	case KindStats:
		var v []TeamStats
		err = json.Unmarshal(raw, &v)
		p = p.WithStats(v)
	case KindStandings:
		var v *Standings
		err = json.Unmarshal(raw, &v)
		p = p.WithStandings(v)
	case KindPower:
		var v *HeadToHead
		err = json.Unmarshal(raw, &v)
		p = p.WithPower(v)
	case KindPlayerStats:
		var v PlayerStatsMap
		err = json.Unmarshal(raw, &v)
		p = p.WithPlayerStats(v)
	default:
		return p, fmt.Errorf("unknown kind %q", k)
	}
	if err != nil {
		return Payload{}, fmt.Errorf("decoding %s: %w", k, err)
	}
	return p, nil
}

// MarshalJSON encodes present kinds as top-level keys.
func (p Payload) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, p.present.Len())
	for _, k := range p.present.Slice() {
		raw, err := p.KindJSON(k)
		if err != nil {
			return nil, err
		}
		out[string(k)] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an object whose keys are kinds. Unknown keys are ignored.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Payload
	for _, k := range kindOrder {
		v, ok := raw[string(k)]
		if !ok {
			continue
		}
		next, err := out.SetKindJSON(k, v)
		if err != nil {
			return err
		}
		out = next
	}
	*p = out
	return nil
}
