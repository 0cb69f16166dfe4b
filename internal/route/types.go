package route

import (
	"fmt"
	"strconv"
	"time"
)

// Point is a single stop in a route's itinerary. Stops are arbitrary
// JSON payloads supplied by the client; no foreign key into the spot
// catalog is enforced.
type Point map[string]any

// ID returns the stop identifier, or nil when the payload has none.
func (p Point) ID() any { return p["id"] }

// Nome returns the stop name, or "" when absent.
func (p Point) Nome() string {
	s, _ := p["nome"].(string)
	return s
}

// Descricao returns the stop description, or "" when absent.
func (p Point) Descricao() string {
	s, _ := p["descricao"].(string)
	return s
}

// Coordinates returns the stop position. Both the flat
// latitude/longitude fields and a nested localizacao object are
// accepted; ok is false when neither is present.
func (p Point) Coordinates() (lat, lng float64, ok bool) {
	lat, latOK := toFloat(p["latitude"])
	lng, lngOK := toFloat(p["longitude"])
	if latOK && lngOK {
		return lat, lng, true
	}

	loc, _ := p["localizacao"].(map[string]any)
	lat, latOK = toFloat(loc["latitude"])
	lng, lngOK = toFloat(loc["longitude"])
	return lat, lng, latOK && lngOK
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

// idKey returns a comparable key for a stop identifier. Identifiers
// are strings or JSON numbers in practice; anything else falls back to
// its text form, tagged by type so distinct kinds never collide.
func idKey(v any) string {
	switch t := v.(type) {
	case string:
		return "s:" + t
	case float64:
		return "n:" + strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return "n:" + strconv.Itoa(t)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T:%v", t, t)
	}
}

// Route is a user-defined itinerary with a start/end window and an
// ordered list of stops.
type Route struct {
	ID         int        `json:"id"`
	Nome       string     `json:"nome"`
	Descricao  *string    `json:"descricao"`
	DataInicio time.Time  `json:"data_inicio"`
	DataFim    *time.Time `json:"data_fim"`
	Pontos     []Point    `json:"pontos_turisticos"`
	UserID     int        `json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// timestampLayouts are tried in order: RFC 3339 first, then the
// zone-less forms the web client sends.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 timestamp, with or without a zone
// suffix.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
