package scene

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the graph payload served by the route provider:
//
//	{"cities": ["A", "B"], "routes": [["A", "B", 215]]}
type Snapshot struct {
	Cities []string `json:"cities"`
	Routes []Route  `json:"routes"`
}

// Route is one [cityA, cityB, distance] triple of a snapshot.
type Route struct {
	From     string
	To       string
	Distance Weight
}

// MarshalJSON encodes the route as a three-element array.
func (r Route) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{r.From, r.To, r.Distance})
}

// UnmarshalJSON decodes a [cityA, cityB, distance] array.
func (r *Route) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("route must be an array: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("route must have 3 elements, got %d", len(raw))
	}

	if err := json.Unmarshal(raw[0], &r.From); err != nil {
		return fmt.Errorf("parsing route origin: %w", err)
	}
	if err := json.Unmarshal(raw[1], &r.To); err != nil {
		return fmt.Errorf("parsing route destination: %w", err)
	}
	if err := json.Unmarshal(raw[2], &r.Distance); err != nil {
		return fmt.Errorf("parsing route distance: %w", err)
	}
	return nil
}

// IsEmpty returns true if the snapshot has neither cities nor routes.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Cities) == 0 && len(s.Routes) == 0
}
