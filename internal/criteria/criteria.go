package criteria

import (
	"clipseek/internal/timecode"
)

// Criteria is the user-assembled filter specification handed to the query
// translator. A field is present only if its toggle was enabled and its value
// passed the kind-specific emptiness/validity rule at build time.
type Criteria struct {
	Text      string             `json:"text,omitempty"`
	Color     string             `json:"color,omitempty"` // hex #rrggbb
	File      string             `json:"file,omitempty"`  // stored reference media filename
	Objects   []string           `json:"objects,omitempty"`
	Words     string             `json:"words,omitempty"`
	Interval  *timecode.Interval `json:"interval,omitempty"`
	Embedding []float64          `json:"embedding,omitempty"`
}

// IsEmpty reports whether no filter fragment made it into the criteria.
func (c Criteria) IsEmpty() bool {
	return c.Text == "" && c.Color == "" && c.File == "" &&
		len(c.Objects) == 0 && c.Words == "" && c.Interval == nil &&
		len(c.Embedding) == 0
}
